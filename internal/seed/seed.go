package seed

import (
	"fmt"
	"os"

	"gorm.io/gorm"
)

// RunFiles executes each SQL file in order and stops at the first failure.
func RunFiles(db *gorm.DB, files ...string) error {
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		if err := db.Exec(string(content)).Error; err != nil {
			return fmt.Errorf("failed to execute %s: %w", file, err)
		}
	}
	return nil
}
