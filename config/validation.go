package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/elaa0505/AzuraCast/internal/adapter/filestore/s3"
)

var validate = validator.New()

// Validate checks struct tags first, then the rules tags cannot express.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return validateStorageOptions(cfg.Storage)
}

func validateStorageOptions(cfg StorageConfig) error {
	if cfg.Type != "s3" {
		return nil
	}
	var opts s3.Options
	if err := mapstructure.Decode(cfg.Options, &opts); err != nil {
		return fmt.Errorf("storage.options: %w", err)
	}
	if err := validate.Struct(opts); err != nil {
		return fmt.Errorf("storage.options: %w", formatValidationError(err))
	}
	return nil
}

// formatValidationError reports the first failing field in a readable form.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)", e.Namespace(), e.Tag(), e.Value())
	}
	return err
}
