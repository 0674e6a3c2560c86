package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text        string
		wantCommand string
		wantArgs    string
		wantOk      bool
	}{
		{"/chia 500k 4", "chia", "500k 4", true},
		{"/UNDO", "undo", "", true},
		{"/report@chitieu_bot", "report", "", true},
		{"cơm 35k", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			command, args, ok := parseCommand(tt.text)

			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantCommand, command)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestServiceImpl_Handle_Commands(t *testing.T) {
	t.Run("undo", func(t *testing.T) {
		f := setup(t)
		_, err := f.service.Handle(f.ctx, "cơm 35k")
		require.NoError(t, err)

		reply, err := f.service.Handle(f.ctx, "/undo")

		require.NoError(t, err)
		assert.Equal(t, KindUndo, reply.Kind)
		assert.Equal(t, 0, f.repo.Len())
	})
	t.Run("undo without expenses", func(t *testing.T) {
		f := setup(t)

		reply, err := f.service.Handle(f.ctx, "/undo")

		require.NoError(t, err)
		assert.Equal(t, nothingToUndo, reply.Text)
	})
	t.Run("report", func(t *testing.T) {
		f := setup(t)
		_, err := f.service.Handle(f.ctx, "cơm 35k")
		require.NoError(t, err)

		reply, err := f.service.Handle(f.ctx, "/thongke")

		require.NoError(t, err)
		assert.Equal(t, KindReport, reply.Kind)
		assert.Contains(t, reply.Text, "📅 Hôm nay: **35,000đ**")
		assert.Equal(t, int64(35_000), reply.Budget.Spent)
	})
	t.Run("split", func(t *testing.T) {
		f := setup(t)

		reply, err := f.service.Handle(f.ctx, "/chia 300k Nam, Hùng, Lộc")

		require.NoError(t, err)
		assert.Equal(t, KindSplit, reply.Kind)
		assert.Contains(t, reply.Text, "👤 **Lộc**: 100,000đ")
		assert.Equal(t, 0, f.repo.Len())
	})
	t.Run("invalid split", func(t *testing.T) {
		f := setup(t)

		reply, err := f.service.Handle(f.ctx, "/chia nhiều")

		require.NoError(t, err)
		assert.Contains(t, reply.Text, "Sai cú pháp")
	})
	t.Run("unknown command shows help", func(t *testing.T) {
		f := setup(t)

		reply, err := f.service.Handle(f.ctx, "/start")

		require.NoError(t, err)
		assert.Equal(t, KindHelp, reply.Kind)
		assert.Contains(t, reply.Text, "HƯỚNG DẪN SỬ DỤNG")
	})
}
