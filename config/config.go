package config

import (
	"log"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"gongke"`

	// MongoDB 配置
	MongoURI            string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase       string `env:"MONGO_DATABASE" envDefault:"gongke"`
	MongoConnectTimeout int    `env:"MONGO_CONNECT_TIMEOUT_SECONDS" envDefault:"10"`
	MongoSocketTimeout  int    `env:"MONGO_SOCKET_TIMEOUT_SECONDS" envDefault:"30"`
	MongoMaxRetries     int    `env:"MONGO_MAX_RETRIES" envDefault:"3"`
	MongoRetryDelay     int    `env:"MONGO_RETRY_DELAY_SECONDS" envDefault:"2"`
	MongoHealthInterval int    `env:"MONGO_HEALTH_INTERVAL_SECONDS" envDefault:"30"`

	// Redis 配置（限流）
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"gk"`

	// RabbitMQ 配置（操作日志异步落盘，可选）
	RabbitMQEnabled  bool   `env:"RABBITMQ_ENABLED" envDefault:"false"`
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// 管理口令，保护删除全部 / 审计日志等危险接口
	AdminToken string `env:"ADMIN_TOKEN"`

	// 功课计数项，逗号分隔。各表单变体字段不一致，这里按配置处理
	PracticeCounters string `env:"PRACTICE_COUNTERS" envDefault:"nianfo,diamond,dizang,yaoshi,dabeizhou,xinjing"`

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 链路追踪 / 指标
	TracingEnabled  bool   `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint string `env:"TRACING_ENDPOINT" envDefault:"localhost:4317"`

	// 速率限制配置, 配置在中间件内
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitWindow  int  `env:"RATE_LIMIT_WINDOW_SECONDS" envDefault:"60"`
	RateLimitMax     int  `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"100"`
}

func init() {

	if err := godotenv.Load(); err != nil {

		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	if Cfg.AdminToken == "" {
		log.Printf("WARN: ADMIN_TOKEN is not set, admin-gated endpoints will reject all requests")
	}

	if len(Cfg.CounterFields()) == 0 {
		log.Fatal("PRACTICE_COUNTERS must list at least one counter field")
	}
}

// CounterFields 返回配置的功课计数字段名列表
func (c *Config) CounterFields() []string {
	parts := strings.Split(c.PracticeCounters, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			fields = append(fields, p)
		}
	}
	return fields
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
