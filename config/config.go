package config

import (
	"os"
	"strconv"
	"time"
)

// Limits holds the deployment-tunable validation bounds. The historical
// deployments disagreed on the description bounds and the price floor, so
// these are configuration, not constants.
type Limits struct {
	DescMinLen      int
	DescMaxLen      int
	PriceFloor      float64
	PageSizeDefault int64
	PageSizeMax     int64
	MaxImages       int
	MinImages       int
}

type Config struct {
	Port        string
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	JwtSecret   []byte
	Limits      Limits
	ImageDelTTL time.Duration

	CloudinaryCloud  string
	CloudinaryKey    string
	CloudinarySecret string

	SESRegion string
	MailFrom  string
	AdminMail string
}

var App Config

// Load reads the environment once at startup. main() loads .env first.
func Load() {
	App = Config{
		Port:        getenv("PORT", ":8080"),
		MongoURI:    getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getenv("MONGO_DB", "sokodb"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		JwtSecret:   []byte(getenv("JWT_SECRET", "change_me")),
		ImageDelTTL: getdur("IMAGE_DELETE_TIMEOUT", 5*time.Second),
		Limits: Limits{
			DescMinLen:      getint("DESC_MIN_LEN", 10),
			DescMaxLen:      getint("DESC_MAX_LEN", 500),
			PriceFloor:      getfloat("PRICE_FLOOR", 1000),
			PageSizeDefault: int64(getint("PAGE_SIZE_DEFAULT", 10)),
			PageSizeMax:     int64(getint("PAGE_SIZE_MAX", 100)),
			MinImages:       1,
			MaxImages:       4,
		},
		CloudinaryCloud:  os.Getenv("CLOUDINARY_CLOUD"),
		CloudinaryKey:    os.Getenv("CLOUDINARY_KEY"),
		CloudinarySecret: os.Getenv("CLOUDINARY_SECRET"),
		SESRegion:        getenv("SES_REGION", "us-east-1"),
		MailFrom:         getenv("MAIL_FROM", "no-reply@soko.local"),
		AdminMail:        os.Getenv("ADMIN_MAIL"),
	}
	if App.Port[0] != ':' {
		App.Port = ":" + App.Port
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getfloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getdur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
