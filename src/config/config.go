package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config アプリケーション設定
type Config struct {
	Data     DataConfig
	Log      LogConfig
	Reminder ReminderConfig
}

// DataConfig データ保存先の設定
type DataConfig struct {
	Directory string
}

// LogConfig ログ設定
type LogConfig struct {
	Level     string
	Directory string
}

// ReminderConfig リマインダースキャンの設定
type ReminderConfig struct {
	ScanInterval  time.Duration
	Notifications bool
}

// LoadConfig は既定値とオプションの設定ファイルから設定を読み込む。
// 環境変数は読まない（単一の対話セッション内で完結するアプリケーション）。
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data.directory", "data")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.directory", "logs")
	v.SetDefault("reminder.scan_interval", "60s")
	v.SetDefault("reminder.notifications", true)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// 設定ファイルが無い場合は既定値で動作する
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return &Config{
		Data: DataConfig{
			Directory: v.GetString("data.directory"),
		},
		Log: LogConfig{
			Level:     v.GetString("log.level"),
			Directory: v.GetString("log.directory"),
		},
		Reminder: ReminderConfig{
			ScanInterval:  v.GetDuration("reminder.scan_interval"),
			Notifications: v.GetBool("reminder.notifications"),
		},
	}, nil
}
