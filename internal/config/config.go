package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSheets   = "sheets"
)

type Application struct {
	// Host is the address the HTTP server listens on.
	Host       string     `koanf:"host"`
	Budget     Budget     `koanf:"budget"`
	Parser     Parser     `koanf:"parser"`
	Categories Categories `koanf:"categories"`
	Waste      Waste      `koanf:"waste"`
	Storage    Storage    `koanf:"storage"`
	Database   Database   `koanf:"db"`
	Sheets     Sheets     `koanf:"sheets"`
	Gemini     Gemini     `koanf:"gemini"`
}

type Budget struct {
	WeeklyLimit      int64  `koanf:"weeklylimit"`
	FirstDay         string `koanf:"firstday"`
	Timezone         string `koanf:"timezone"`
	WarningPercent   int64  `koanf:"warningpercent"`
	EarlyWarningDays int    `koanf:"earlywarningdays"`
}

type Parser struct {
	// FillerWords are stripped from the start of descriptions. Empty means built-in defaults.
	FillerWords []string `koanf:"fillerwords"`
}

type Categories struct {
	Default string `koanf:"default"`
	// Rules are checked in order. Empty means built-in defaults.
	Rules []CategoryRule `koanf:"rules"`
}

type CategoryRule struct {
	Name     string   `koanf:"name"`
	Keywords []string `koanf:"keywords"`
}

type Waste struct {
	Keywords []string `koanf:"keywords"`
	Warnings []string `koanf:"warnings"`
}

type Storage struct {
	// Driver is one of memory, postgres or sheets.
	Driver         string `koanf:"driver"`
	TimeoutSeconds int    `koanf:"timeoutseconds"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Sheets struct {
	SpreadsheetId   string `koanf:"spreadsheetid"`
	SheetName       string `koanf:"sheetname"`
	CredentialsFile string `koanf:"credentialsfile"`
	// CredentialsJSON takes precedence over CredentialsFile when both are set.
	CredentialsJSON string `koanf:"credentialsjson"`
}

type Gemini struct {
	ApiKey         string  `koanf:"apikey"`
	Model          string  `koanf:"model"`
	Temperature    float32 `koanf:"temperature"`
	TimeoutSeconds int     `koanf:"timeoutseconds"`
}

func Defaults() Application {
	return Application{
		Host: ":8181",
		Budget: Budget{
			WeeklyLimit:      700_000,
			FirstDay:         "monday",
			Timezone:         "Asia/Ho_Chi_Minh",
			WarningPercent:   80,
			EarlyWarningDays: 4,
		},
		Categories: Categories{
			Default: "Other",
		},
		Storage: Storage{
			Driver:         StorageMemory,
			TimeoutSeconds: 10,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "chitieu",
			Pass:   "",
			Name:   "chitieu",
			Schema: "chitieu",
		},
		Sheets: Sheets{
			SheetName: "Sheet1",
		},
		Gemini: Gemini{
			Model:          "gemini-1.5-flash",
			Temperature:    0.7,
			TimeoutSeconds: 30,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "CHITIEU_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "CHITIEU_")), "_", ".")
			// comma separated lists, e.g. CHITIEU_PARSER_FILLERWORDS="mua,chi"
			if strings.HasSuffix(k, "words") || strings.HasSuffix(k, "keywords") || strings.HasSuffix(k, "warnings") {
				return k, splitList(v)
			}
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
