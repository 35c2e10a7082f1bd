package configuration

import (
	"fmt"
	"os"
	"strconv"

	"vidtube/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	Database    Database    `json:"database"`
	App         App         `json:"app"`
	MediaHost   MediaHost   `json:"mediaHost"`
	RedisClient RedisClient `json:"redisClient"`
	Pubsub      Pubsub      `json:"pubsub"`
	Cors        Cors        `json:"cors"`
	Logger      Logger      `json:"logger"`
}

type App struct {
	Port                  int    `json:"port"`
	SecretKey             string `json:"secretKey"`
	RefreshSecretKey      string `json:"refreshSecretKey"`
	AccessTokenTTLMinutes int    `json:"accessTokenTTLMinutes"`
	RefreshTokenTTLHours  int    `json:"refreshTokenTTLHours"`
	RequestTimeoutSeconds int    `json:"requestTimeoutSeconds"`
}

type Database struct {
	Mongo Db `json:"mongo"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// MediaHost points at the external media store that receives uploaded
// video files and thumbnails and serves them back by URL.
type MediaHost struct {
	BaseURL        string `json:"baseURL"`
	APIKey         string `json:"apiKey"`
	UploadFolder   string `json:"uploadFolder"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

type RedisClient struct {
	Host            string `json:"host"`
	Port            string `json:"port"`
	Password        string `json:"password"`
	Username        string `json:"username"`
	StatsTTLSeconds int    `json:"statsTTLSeconds"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
	Topic     string `json:"topic"`
}

type Cors struct {
	Origins []string `json:"origins"`
}

type Logger struct {
	Format string `json:"format"`
}

var C Config

func init() {
	LoadConfig()
	initDatabase(&C)
	initApp(&C)
	initMediaHost(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	if C.Database.Mongo.Name == "" {
		C.Database.Mongo.Name = os.Getenv("MONGO_DB_NAME")
	}
	if C.Database.Mongo.Name == "" {
		C.Database.Mongo.Name = "vidtube"
	}
	if C.Database.Mongo.Host == "" {
		C.Database.Mongo.Host = os.Getenv("MONGO_HOST")
	}
	if C.Database.Mongo.Host == "" {
		C.Database.Mongo.Host = "localhost"
	}
	if C.Database.Mongo.Port == "" {
		C.Database.Mongo.Port = os.Getenv("MONGO_PORT")
	}
	if C.Database.Mongo.Port == "" {
		C.Database.Mongo.Port = "27017"
	}
	if C.Database.Mongo.User == "" {
		C.Database.Mongo.User = os.Getenv("MONGO_USER")
	}
	if C.Database.Mongo.Password == "" {
		C.Database.Mongo.Password = os.Getenv("MONGO_PASSWORD")
	}

	if C.RedisClient.Host == "" {
		C.RedisClient.Host = os.Getenv("REDIS_HOST")
	}
	if C.RedisClient.Port == "" {
		if v := os.Getenv("REDIS_PORT"); v != "" {
			C.RedisClient.Port = v
		} else {
			C.RedisClient.Port = "6379"
		}
	}
	if C.RedisClient.StatsTTLSeconds == 0 {
		C.RedisClient.StatsTTLSeconds = 60
	}
}

func initApp(C *Config) {
	// SECRET_KEY from environment overrides the config file when provided.
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	if v := os.Getenv("REFRESH_SECRET_KEY"); v != "" {
		C.App.RefreshSecretKey = v
	}
	if C.App.RefreshSecretKey == "" {
		C.App.RefreshSecretKey = C.App.SecretKey
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if C.App.AccessTokenTTLMinutes == 0 {
		C.App.AccessTokenTTLMinutes = 60
	}
	if C.App.RefreshTokenTTLHours == 0 {
		C.App.RefreshTokenTTLHours = 240
	}
	if C.App.RequestTimeoutSeconds == 0 {
		C.App.RequestTimeoutSeconds = 10
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; JWT authentication will fail. Provide SECRET_KEY via environment.")
	}
}

func initMediaHost(C *Config) {
	if C.MediaHost.BaseURL == "" {
		C.MediaHost.BaseURL = os.Getenv("MEDIA_HOST_URL")
	}
	if C.MediaHost.APIKey == "" {
		C.MediaHost.APIKey = os.Getenv("MEDIA_HOST_API_KEY")
	}
	if C.MediaHost.UploadFolder == "" {
		C.MediaHost.UploadFolder = "vidtube"
	}
	if C.MediaHost.TimeoutSeconds == 0 {
		C.MediaHost.TimeoutSeconds = 30
	}
}
