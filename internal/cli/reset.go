package cli

import (
	"fmt"

	"github.com/terraincognita07/quaresma/internal/db"
	"github.com/terraincognita07/quaresma/internal/logger"
	"github.com/terraincognita07/quaresma/internal/services"
)

// RunResetJourneyCommand stores an empty journey so the next start lands on the
// quiz again. A running server keeps its own copy in memory and writes it back
// on its next change, so stop the server first.
func RunResetJourneyCommand(dbPath string, log *logger.Logger) error {
	database, err := db.OpenSQLite(dbPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	repositories := db.NewRepositories(database)
	store := services.NewStateStore(repositories.States, log)
	if err := store.Reset(); err != nil {
		return err
	}

	fmt.Println("✅ Journey reset successful")
	fmt.Println("The next visit starts from the quiz.")
	fmt.Println("Restart the server if it was running; it still holds the previous journey in memory.")
	return nil
}
