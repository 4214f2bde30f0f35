package config

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Config struct {
	Port     string `koanf:"port"`
	GinMode  string `koanf:"gin_mode"`
	LogLevel string `koanf:"log_level"`

	// MongoURI wins over the DB_USER / DB_PASS / DB_HOST triple when set.
	MongoURI string `koanf:"mongodb_uri"`
	DBUser   string `koanf:"db_user"`
	DBPass   string `koanf:"db_pass"`
	DBHost   string `koanf:"db_host"`
	DBName   string `koanf:"db_name"`

	CloudinaryCloudName string `koanf:"cloudinary_cloud_name"`
	CloudinaryAPIKey    string `koanf:"cloudinary_api_key"`
	CloudinaryAPISecret string `koanf:"cloudinary_api_secret"`

	ZeptoAPIURL string `koanf:"zepto_api_url"`
	ZeptoAPIKey string `koanf:"zepto_api_key"`
	EmailFrom   string `koanf:"email_from"`

	MongoClient *mongo.Client `koanf:"-"`
}

// Default returns a Config with every optional value filled in.
func Default() *Config {
	return &Config{
		Port:     "3000",
		GinMode:  "release",
		LogLevel: "info",
		DBName:   "socialDevelopment",
	}
}

// LoadEnv loads a .env file into the process environment if one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}
}

// Load layers the process environment over Default.
func Load() (*Config, error) {
	LoadEnv()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.DBName == "" {
		cfg.DBName = "socialDevelopment"
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// ConnectionURI builds the MongoDB connection string.
func (c *Config) ConnectionURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	if c.DBUser == "" {
		return "mongodb://localhost:27017"
	}
	host := c.DBHost
	if host == "" {
		host = "cluster0.mongodb.net"
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

// CloudinaryEnabled reports whether thumbnail uploads can be served.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// MailEnabled reports whether join confirmation emails can be sent.
func (c *Config) MailEnabled() bool {
	return c.ZeptoAPIURL != "" && c.ZeptoAPIKey != "" && c.EmailFrom != ""
}

// Connect opens the shared MongoDB client and pings the deployment once.
func (c *Config) Connect(ctx context.Context, logger *zap.Logger) error {
	opts := options.Client().
		ApplyURI(c.ConnectionURI()).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Database("admin").RunCommand(pingCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("ping mongodb: %w", err)
	}
	logger.Info("pinged deployment, connected to MongoDB", zap.String("db", c.DBName))

	c.MongoClient = client
	return nil
}

// Database returns the application database on the shared client.
func (c *Config) Database() *mongo.Database {
	return c.MongoClient.Database(c.DBName,
		options.Database().SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true}))
}

// NewLogger builds the process logger at LogLevel.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", c.LogLevel, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	return zc.Build()
}
