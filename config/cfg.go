package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"slices"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"onepaper/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// All page distances are in centimeters, all font sizes in points.

	PageConfig struct {
		Width        float64 `yaml:"width" validate:"gt=0"`
		Height       float64 `yaml:"height" validate:"gt=0"`
		Margin       float64 `yaml:"margin" validate:"gte=0"`
		HeaderHeight float64 `yaml:"header_height" validate:"gte=0"`
		HeaderGutter float64 `yaml:"header_gutter" validate:"gte=0"`
		BoxGap       float64 `yaml:"box_gap" validate:"gte=0"`
		ColumnGap    float64 `yaml:"column_gap" validate:"gte=0"`
	}

	FontsConfig struct {
		Body string `yaml:"body" validate:"required"`
		Bold string `yaml:"bold" validate:"required"`
	}

	HeaderConfig struct {
		// TitleSizes has one more entry than TitleThresholds: title which is
		// at least TitleThresholds[i] characters long gets TitleSizes[i+1].
		TitleSizes        []float64 `yaml:"title_sizes" validate:"min=1,dive,gt=0"`
		TitleThresholds   []int     `yaml:"title_thresholds" validate:"dive,gt=0"`
		TitleBoxHeight    float64   `yaml:"title_box_height" validate:"gt=0"`
		SubtitleSize      float64   `yaml:"subtitle_size" validate:"gt=0"`
		SubtitleBoxHeight float64   `yaml:"subtitle_box_height" validate:"gt=0"`
		RuleThickness     float64   `yaml:"rule_thickness" validate:"gt=0"`
		DefaultTitle      string    `yaml:"default_title"`
	}

	SectionConfig struct {
		HeaderHeight  float64 `yaml:"header_height" validate:"gt=0"`
		LabelSize     float64 `yaml:"label_size" validate:"gt=0"`
		BodySize      float64 `yaml:"body_size" validate:"gt=0"`
		BodySmallSize float64 `yaml:"body_small_size" validate:"gt=0"`
		// text longer than this number of characters gets smaller font
		BodySmallAbove int     `yaml:"body_small_above" validate:"gte=0"`
		LineSpacing    float64 `yaml:"line_spacing" validate:"gt=0"`
		SpaceAfter     float64 `yaml:"space_after" validate:"gte=0"`
	}

	FlowConfig struct {
		MaxSteps     int     `yaml:"max_steps" validate:"min=1"`
		ArrowWidth   float64 `yaml:"arrow_width" validate:"gt=0"`
		ArrowHeight  float64 `yaml:"arrow_height" validate:"gt=0"`
		StepFontSize float64 `yaml:"step_font_size" validate:"gt=0"`
	}

	LegacyLabelConfig struct {
		Match string `yaml:"match" validate:"required"`
		Label string `yaml:"label" validate:"required"`
	}

	// LegacyConfig describes how fixed slot mapping (box1..box8) is placed
	// on the page.
	LegacyConfig struct {
		RightSlots   []string            `yaml:"right_slots" validate:"dive,required"`
		Labels       []LegacyLabelConfig `yaml:"labels" validate:"dive"`
		DefaultLabel string              `yaml:"default_label" validate:"required"`
	}

	DocumentConfig struct {
		FixZip                bool             `yaml:"fix_zip"`
		OutputNameTemplate    string           `yaml:"output_name_template"`
		FileNameTransliterate bool             `yaml:"file_name_transliterate"`
		ThemeMode             common.ThemeMode `yaml:"theme_mode"`
		Fonts                 FontsConfig      `yaml:"fonts"`
		Page                  PageConfig       `yaml:"page"`
		Header                HeaderConfig     `yaml:"header"`
		Section               SectionConfig    `yaml:"section"`
		Flow                  FlowConfig       `yaml:"flow"`
		Legacy                LegacyConfig     `yaml:"legacy"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

// checkConsistency validates relations between fields which cannot be
// expressed with tags.
func checkConsistency(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	hdr := cfg.Document.Header
	if len(hdr.TitleSizes) != len(hdr.TitleThresholds)+1 {
		sl.ReportError(hdr.TitleSizes, "title_sizes", "TitleSizes", "tiers", "")
	}
	if !slices.IsSorted(hdr.TitleThresholds) || len(slices.Compact(slices.Clone(hdr.TitleThresholds))) != len(hdr.TitleThresholds) {
		sl.ReportError(hdr.TitleThresholds, "title_thresholds", "TitleThresholds", "ascending", "")
	}
	for i := 1; i < len(hdr.TitleSizes); i++ {
		if hdr.TitleSizes[i] > hdr.TitleSizes[i-1] {
			sl.ReportError(hdr.TitleSizes, "title_sizes", "TitleSizes", "nonincreasing", "")
			break
		}
	}
	if sec := cfg.Document.Section; sec.BodySmallSize > sec.BodySize {
		sl.ReportError(sec.BodySmallSize, "body_small_size", "BodySmallSize", "ltefield", "BodySize")
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(*cfg, gencfg.WithAdditionalChecks(checkConsistency)); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
