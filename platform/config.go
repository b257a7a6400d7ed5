package platform

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config 包含服务运行所需的全部配置
type Config struct {
	Port       string        `envconfig:"PORT" default:"8080"`
	GinMode    string        `envconfig:"GIN_MODE" default:"release"`
	CORSOrigin string        `envconfig:"CORS_ORIGIN" default:"http://localhost"`
	LogPath    string        `envconfig:"LOG_PATH" default:"./log"`
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`
	Secret     string        `envconfig:"ACCESS_SECRET" required:"true"`
	AccessTTL  time.Duration `envconfig:"ACCESS_TTL" default:"168h"`
	DB         DBConfig
}

// DBConfig 包含数据库连接的配置信息
type DBConfig struct {
	Driver     string `envconfig:"DB_DRIVER" default:"mysql"`
	Host       string `envconfig:"SQL_HOST" default:"127.0.0.1"`
	Port       string `envconfig:"SQL_PORT" default:"3306"`
	User       string `envconfig:"SQL_USER"`
	Password   string `envconfig:"SQL_PASSWORD"`
	DBName     string `envconfig:"SQL_DBNAME" default:"messenger"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"messenger.db"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil {
		fmt.Println("failed to load the env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return &cfg, nil
}
