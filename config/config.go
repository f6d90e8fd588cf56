package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 应用程序配置
type Config struct {
	APIPort  int
	LogLevel string
	LogFile  LogFileConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Email    EmailConfig
	Payment  PaymentConfig
	Admin    AdminConfig
	Redeem   RedeemConfig
}

// DatabaseConfig MySQL数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

// EmailConfig 邮件配置
type EmailConfig struct {
	Host     string // SMTP服务器地址
	Port     int    // SMTP服务器端口
	Username string // 邮箱账号
	Password string // 邮箱密码
	From     string // 发件人
	FromName string // 发件人名称
}

// LogFileConfig 日志文件配置
type LogFileConfig struct {
	Enabled    bool
	Path       string
	MaxSize    int // 单个文件最大大小，单位MB
	MaxBackups int // 最大保留旧文件数量
	MaxAge     int // 最大保留天数
	Compress   bool
}

// PaymentConfig 支付网关配置
type PaymentConfig struct {
	GatewayURL   string // 网关地址
	MerchantID   string // 商户号
	MerchantKey  string // 商户密钥
	NotifyURL    string // 异步回调地址
	ReturnURL    string // 同步跳转地址
	EnableAlipay bool
	EnableWxpay  bool
	Notice       string // 支付页提示文案
}

// AdminConfig 管理员配置
type AdminConfig struct {
	Username         string
	PasswordHash     string // bcrypt哈希
	JWTSecret        string
	TokenExpireHours int
}

// RedeemConfig 兑换相关配置
type RedeemConfig struct {
	RebindMaxCount     int // 每个兑换码允许的换车次数上限
	OrderExpireMinutes int // 订单支付超时时间
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	// 加载.env文件
	err := godotenv.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	return &Config{
		APIPort:  getEnvInt("API_PORT", 8080),
		LogLevel: os.Getenv("LOG_LEVEL"),
		LogFile: LogFileConfig{
			Enabled:    os.Getenv("LOG_FILE_ENABLED") == "true",
			Path:       os.Getenv("LOG_FILE_PATH"),
			MaxSize:    getEnvInt("LOG_FILE_MAX_SIZE", 100),
			MaxBackups: getEnvInt("LOG_FILE_MAX_BACKUPS", 7),
			MaxAge:     getEnvInt("LOG_FILE_MAX_AGE", 30),
			Compress:   os.Getenv("LOG_FILE_COMPRESS") == "true",
		},
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnvInt("DB_PORT", 3306),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Email: EmailConfig{
			Host:     os.Getenv("EMAIL_HOST"),
			Port:     getEnvInt("EMAIL_PORT", 587),
			Username: os.Getenv("EMAIL_USERNAME"),
			Password: os.Getenv("EMAIL_PASSWORD"),
			From:     os.Getenv("EMAIL_FROM"),
			FromName: os.Getenv("EMAIL_FROM_NAME"),
		},
		Payment: PaymentConfig{
			GatewayURL:   os.Getenv("PAY_GATEWAY_URL"),
			MerchantID:   os.Getenv("PAY_MERCHANT_ID"),
			MerchantKey:  os.Getenv("PAY_MERCHANT_KEY"),
			NotifyURL:    os.Getenv("PAY_NOTIFY_URL"),
			ReturnURL:    os.Getenv("PAY_RETURN_URL"),
			EnableAlipay: os.Getenv("PAY_ENABLE_ALIPAY") != "false",
			EnableWxpay:  os.Getenv("PAY_ENABLE_WXPAY") != "false",
			Notice:       os.Getenv("PAY_NOTICE"),
		},
		Admin: AdminConfig{
			Username:         os.Getenv("ADMIN_USERNAME"),
			PasswordHash:     os.Getenv("ADMIN_PASSWORD_HASH"),
			JWTSecret:        os.Getenv("JWT_SECRET"),
			TokenExpireHours: getEnvInt("TOKEN_EXPIRE_HOURS", 24),
		},
		Redeem: RedeemConfig{
			RebindMaxCount:     getEnvInt("REBIND_MAX_COUNT", 3),
			OrderExpireMinutes: getEnvInt("ORDER_EXPIRE_MINUTES", 15),
		},
	}, nil
}

// getEnvInt 解析整数环境变量，解析失败时返回默认值
func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
