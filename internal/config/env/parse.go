package env

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parse loads a tagged struct from the environment
func parse[T any]() (T, error) {
	v, err := env.ParseAs[T]()
	if err != nil {
		return v, fmt.Errorf("parse env: %w", err)
	}
	return v, nil
}
