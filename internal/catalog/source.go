package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gopkg.in/yaml.v3"
)

//go:embed data/foods.json
var embedded embed.FS

// Source loads a dataset. Implementations are called once at startup.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

// Format of an encoded catalog.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFor guesses the format from a file name, defaulting to JSON.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Decode parses an encoded list of foods into a dataset.
func Decode(source string, format Format, data []byte) (*Dataset, error) {
	var items []FoodItem
	var err error
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, &items)
	case JSON:
		err = json.Unmarshal(data, &items)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, &DatasetError{Source: source, Err: err}
	}
	return NewDataset(source, items)
}

// EmbeddedSource serves the catalog compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Load(context.Context) (*Dataset, error) {
	return Default()
}

// Default returns the built-in catalog.
func Default() (*Dataset, error) {
	data, err := embedded.ReadFile("data/foods.json")
	if err != nil {
		return nil, &DatasetError{Source: "embedded", Err: err}
	}
	return Decode("embedded", JSON, data)
}

// FileSource reads a JSON or YAML catalog from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Load(context.Context) (*Dataset, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &DatasetError{Source: s.Path, Err: err}
	}
	return Decode(s.Path, FormatFor(s.Path), data)
}

// ObjectGetter is the part of the S3 client the catalog needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads a catalog object from a bucket.
type S3Source struct {
	Client ObjectGetter
	Bucket string
	Key    string
}

func (s S3Source) Load(ctx context.Context) (*Dataset, error) {
	name := fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key)

	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, &DatasetError{Source: name, Err: err}
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, &DatasetError{Source: name, Err: err}
	}
	return Decode(name, FormatFor(s.Key), data)
}
