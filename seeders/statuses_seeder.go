package seeders

import (
	"context"
	"log"

	"ppe-tracker/internal/repositories"
)

func seedStatuses(ctx context.Context, statusRepo repositories.StatusRepositoryInterface) error {
	log.Println("  - seeding 'statuses'...")

	for _, s := range statusesData {
		if err := statusRepo.Upsert(ctx, s.Code, s.Name); err != nil {
			log.Printf("failed to upsert status '%s': %v", s.Code, err)
			return err
		}
	}
	return nil
}
