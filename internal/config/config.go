package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
	"time"
)

type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
		AdminId int64  `yaml:"admin_id" env:"TELEGRAM_ADMIN_ID" env-default:"0"`
		Enabled bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	Sheets struct {
		SpreadsheetID   string `yaml:"spreadsheet_id" env:"GOOGLE_SHEETS_ID" env-default:""`
		CredentialsFile string `yaml:"credentials_file" env:"GOOGLE_CREDENTIALS_PATH" env-default:"credentials.json"`
	} `yaml:"sheets"`
	Notifier struct {
		Enabled      bool          `yaml:"enabled" env-default:"true"`
		SheetName    string        `yaml:"sheet_name" env:"SHEET_NAME" env-default:"Form1"`
		WebhookURL   string        `yaml:"webhook_url" env:"WEBHOOK_URL" env-default:"https://09bf-115-76-117-120.ngrok-free.app/webhook/booking"`
		StatusText   string        `yaml:"status_text" env-default:"Chờ xử lý"`
		StatusColumn int           `yaml:"status_column" env-default:"11"`
		Schedule     string        `yaml:"schedule" env-default:"@every 1m"`
		FireOnStart  bool          `yaml:"fire_on_start" env-default:"false"`
		Timeout      time.Duration `yaml:"timeout" env-default:"60s"`
	} `yaml:"notifier"`
	Mail struct {
		Driver          string `yaml:"driver" env:"MAIL_DRIVER" env-default:"gmail"`
		From            string `yaml:"from" env:"MAIL_FROM" env-default:""`
		SenderName      string `yaml:"sender_name" env-default:"Discord Booking System"`
		CredentialsFile string `yaml:"credentials_file" env:"GMAIL_CREDENTIALS_PATH" env-default:"credentials.json"`
		SendGrid        struct {
			ApiKey string `yaml:"api_key" env:"SENDGRID_API_KEY" env-default:""`
			Host   string `yaml:"host" env-default:""`
		} `yaml:"sendgrid"`
		SMTP struct {
			Host     string `yaml:"host" env:"SMTP_HOST" env-default:"smtp.gmail.com"`
			Port     string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
			User     string `yaml:"user" env:"SMTP_USER" env-default:""`
			Password string `yaml:"password" env:"SMTP_PASS" env-default:""`
		} `yaml:"smtp"`
	} `yaml:"mail"`
	Listen struct {
		Enabled bool          `yaml:"enabled" env-default:"true"`
		BindIP  string        `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port    string        `yaml:"port" env:"PORT" env-default:"9100"`
		Timeout time.Duration `yaml:"timeout" env-default:"30s"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
