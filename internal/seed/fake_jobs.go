package seed

import (
	"context"
	"fmt"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"math"
	"time"
)

var fakeCategories = []string{
	"Home Services", "Design", "Cleaning", "Development", "Gardening", "Tutoring", "Moving", "Pet Care",
}

// SeedFakeJobs posts count random open jobs on behalf of the user with ownerEmail. The same seed
// always produces the same jobs.
func (s *Seeder) SeedFakeJobs(ctx context.Context, ownerEmail string, count int, seed int64) ([]models.Job, error) {
	jobs := make([]models.Job, 0, count)
	err := s.inTransaction(ctx, func(st stores) error {
		owner, err := st.users.GetByEmail(ctx, ownerEmail)
		if err != nil {
			return err
		}

		faker := gofakeit.New(seed)
		for i := 0; i < count; i++ {
			job := models.NewJob(
				owner.ID,
				faker.JobTitle(),
				faker.Sentence(12),
				faker.RandomString(fakeCategories),
				fmt.Sprintf("%s, %s", faker.City(), faker.StateAbr()),
				fakeBudget(faker),
				faker.Number(1, 5) == 1,
			)
			job.PostedAt = s.now().Add(-time.Duration(faker.Number(0, 14*24)) * time.Hour)

			if err := st.jobs.Add(ctx, job); err != nil {
				return fmt.Errorf("failed to add fake job: %w", err)
			}
			jobs = append(jobs, *job)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func fakeBudget(faker *gofakeit.Faker) models.Budget {
	switch faker.Number(0, 4) {
	case 0:
		return models.HourlyBudget(math.Round(faker.Float64Range(15, 120)))
	case 1:
		return models.MonthlyBudget(math.Round(faker.Float64Range(500, 6000)))
	default:
		low := math.Round(faker.Float64Range(50, 2000))
		return models.FixedBudget(low, low+math.Round(faker.Float64Range(25, 1500)))
	}
}
