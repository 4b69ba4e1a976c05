package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"jumpa_withdrawal_back/models"
	"jumpa_withdrawal_back/pkg/chain"
	"jumpa_withdrawal_back/pkg/intent"
	"jumpa_withdrawal_back/pkg/notify"
	"jumpa_withdrawal_back/pkg/payout"
	"jumpa_withdrawal_back/pkg/paystack"
	"jumpa_withdrawal_back/pkg/rates"
	"jumpa_withdrawal_back/pkg/repository"
)

func InitConfig() error {
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	viper.SetDefault("port", "8000")
	viper.SetDefault("http.timeout", 20*time.Second)
	viper.SetDefault("session.ttl", 15*time.Minute)
	viper.SetDefault("session.sweep_every", time.Minute)
	return viper.ReadInConfig()
}

// envOr prefers a non-empty environment variable over the yaml value.
func envOr(env, key string) string {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	return viper.GetString(key)
}

func dbConfig() repository.Config {
	return repository.Config{
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: os.Getenv("DB_PASS"),
		DBName:   viper.GetString("db.dbname"),
		SSLMode:  viper.GetString("db.sslmode"),
	}
}

func intentConfig() intent.Config {
	return intent.Config{
		BaseURL: viper.GetString("intent.base_url"),
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Model:   viper.GetString("intent.model"),
		Timeout: viper.GetDuration("http.timeout"),
	}
}

func paystackConfig() paystack.Config {
	return paystack.Config{
		BaseURL:   viper.GetString("paystack.base_url"),
		SecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		Timeout:   viper.GetDuration("http.timeout"),
	}
}

func ratesConfig() rates.Config {
	return rates.Config{
		URL:     envOr("PAYMENT_RATE_URL", "rates.url"),
		Timeout: viper.GetDuration("http.timeout"),
	}
}

func payoutConfig() payout.Config {
	return payout.Config{
		URL:             envOr("PAYMENT_WIDGET_URL", "payout.url"),
		APIKey:          os.Getenv("YARA_PUBLIC_KEY"),
		WidgetPublicKey: envOr("YARA_WIDGET_PUBLIC_KEY", "payout.widget_public_key"),
		DeveloperFee:    viper.GetString("payout.developer_fee"),
		ContactEmail:    viper.GetString("payout.contact_email"),
		ContactPhone:    viper.GetString("payout.contact_phone"),
		Address:         viper.GetString("payout.address"),
		Timeout:         viper.GetDuration("http.timeout"),
	}
}

// chainConfig overlays yaml endpoints on the built-in mainnet defaults.
func chainConfig() chain.Config {
	networks := chain.DefaultNetworks()
	for c, n := range networks {
		key := "chains." + strings.ToLower(string(c))
		if v := viper.GetString(key + ".rpc_url"); v != "" {
			n.RPCURL = v
		}
		if v := viper.GetString(key + ".explorer"); v != "" {
			n.Explorer = v
		}
		for _, cur := range []models.Currency{models.CurrencyUSDC, models.CurrencyUSDT} {
			if v := viper.GetString(key + ".tokens." + strings.ToLower(string(cur))); v != "" {
				n.Tokens[cur] = v
			}
		}
		networks[c] = n
	}
	return chain.Config{
		Networks: networks,
		Confirm: chain.Confirm{
			Timeout:  viper.GetDuration("chains.confirm_timeout"),
			Interval: viper.GetDuration("chains.confirm_interval"),
		},
	}
}

func notifyConfig() notify.Config {
	return notify.Config{
		Provider:         viper.GetString("notify.provider"),
		From:             viper.GetString("notify.from"),
		FromName:         viper.GetString("notify.from_name"),
		To:               viper.GetString("notify.to"),
		MailjetAPIKey:    os.Getenv("MAILJET_API_KEY"),
		MailjetSecretKey: os.Getenv("MAILJET_SECRET_KEY"),
		SMTPHost:         viper.GetString("notify.smtp.host"),
		SMTPPort:         viper.GetInt("notify.smtp.port"),
		SMTPUsername:     viper.GetString("notify.smtp.username"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
	}
}
