package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/raushankrgupta/harvesthub-seeder/models"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL     = "http://localhost:8081"
	DefaultHTTPTimeout = 30 * time.Second
)

// Config holds everything one seeding run needs
type Config struct {
	BaseURL     string        `validate:"required,url"`
	Username    string        `validate:"required"`
	Password    string        `validate:"required"`
	SellerID    string        // defaults to Username
	ImageSource string        // directory, http(s):// URL or s3://bucket/key; empty means no image
	AWSRegion   string        // used by s3:// image sources
	HTTPTimeout time.Duration `validate:"gt=0"`
	Draft       models.ProductDraft
}

// Load reads the optional env file, then environment variables, then the
// draft file named by HARVESTHUB_DRAFT_FILE (or the built-in sample draft).
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	cfg := &Config{
		BaseURL:     getEnv("HARVESTHUB_BASE_URL", DefaultBaseURL),
		Username:    os.Getenv("HARVESTHUB_USERNAME"),
		Password:    os.Getenv("HARVESTHUB_PASSWORD"),
		SellerID:    os.Getenv("HARVESTHUB_SELLER_ID"),
		ImageSource: os.Getenv("HARVESTHUB_IMAGE_SOURCE"),
		AWSRegion:   os.Getenv("AWS_REGION"),
		HTTPTimeout: DefaultHTTPTimeout,
		Draft:       SampleDraft(),
	}

	if v := os.Getenv("HARVESTHUB_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HARVESTHUB_HTTP_TIMEOUT %q: %w", v, err)
		}
		cfg.HTTPTimeout = d
	}

	if path := os.Getenv("HARVESTHUB_DRAFT_FILE"); path != "" {
		draft, err := LoadDraft(path)
		if err != nil {
			return nil, err
		}
		cfg.Draft = draft
	}

	return cfg, nil
}

// Validate checks that the fields a run cannot do without are set
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")

	if err := validator.New().Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var msgs []string
			for _, e := range validationErrors {
				msgs = append(msgs, fmt.Sprintf("%s failed '%s'", e.Field(), e.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
		}
		return err
	}
	return nil
}

// EffectiveSellerID returns the seller id sent with the product
func (c *Config) EffectiveSellerID() string {
	if c.SellerID != "" {
		return c.SellerID
	}
	return c.Username
}

// draftFile mirrors ProductDraft for YAML input; numbers are read as text so
// they keep their exact decimal form.
type draftFile struct {
	Name                string            `yaml:"name"`
	ShortDescription    string            `yaml:"shortDescription"`
	Description         string            `yaml:"description"`
	Category            string            `yaml:"category"`
	Price               string            `yaml:"price"`
	Stock               int               `yaml:"stock"`
	Weight              string            `yaml:"weight"`
	Unit                string            `yaml:"unit"`
	Origin              string            `yaml:"origin"`
	ExpiryDate          string            `yaml:"expiryDate"`
	StorageInstructions string            `yaml:"storageInstructions"`
	Status              string            `yaml:"status"`
	Specifications      map[string]string `yaml:"specifications"`
}

// LoadDraft reads a product draft from a YAML file
func LoadDraft(path string) (models.ProductDraft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ProductDraft{}, fmt.Errorf("failed to read draft file %s: %w", path, err)
	}
	return ParseDraft(data)
}

// ParseDraft decodes a YAML product draft
func ParseDraft(data []byte) (models.ProductDraft, error) {
	var f draftFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return models.ProductDraft{}, fmt.Errorf("failed to parse draft: %w", err)
	}

	price, err := parseDecimal("price", f.Price)
	if err != nil {
		return models.ProductDraft{}, err
	}
	var weight decimal.NullDecimal
	if strings.TrimSpace(f.Weight) != "" {
		w, err := parseDecimal("weight", f.Weight)
		if err != nil {
			return models.ProductDraft{}, err
		}
		weight = decimal.NewNullDecimal(w)
	}

	status := f.Status
	if status == "" {
		status = "active"
	}

	return models.ProductDraft{
		Name:                f.Name,
		ShortDescription:    f.ShortDescription,
		Description:         f.Description,
		Category:            f.Category,
		Price:               price,
		Stock:               f.Stock,
		Weight:              weight,
		Unit:                f.Unit,
		Origin:              f.Origin,
		ExpiryDate:          f.ExpiryDate,
		StorageInstructions: f.StorageInstructions,
		Status:              status,
		Specifications:      f.Specifications,
	}, nil
}

// SampleDraft is the product submitted when no draft file is configured
func SampleDraft() models.ProductDraft {
	return models.ProductDraft{
		Name:                "Bông cải xanh tươi",
		ShortDescription:    "Súp lơ xanh tươi ngon",
		Description:         "Bông cải xanh là một loại rau thuộc họ cải, được sử dụng làm thực phẩm, thường được luộc hoặc hấp, nhưng cũng có thể ăn sống trong salad.",
		Category:            "Rau Củ",
		Price:               decimal.NewFromInt(20000),
		Stock:               123,
		Weight:              decimal.NewNullDecimal(decimal.NewFromInt(1)),
		Unit:                "kg",
		Origin:              "VN",
		ExpiryDate:          "1 tháng",
		StorageInstructions: "Bảo quản nơi khô ráo và thoáng mát",
		Status:              "active",
		Specifications: map[string]string{
			"Kích thước":  "10x10",
			"Thành phần":  "Rau xanh",
			"Thương hiệu": "Việt Grap",
		},
	}
}

func parseDecimal(field, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
