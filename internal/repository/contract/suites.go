// Package contract holds backend-agnostic repository test suites.
// Every backend runs the same suites so behaviour cannot drift between them.
package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/maxviazov/workout-api/internal/model"
	"github.com/maxviazov/workout-api/internal/repository"
)

// Repos bundles one backend's repositories.
type Repos struct {
	Categories      repository.CategoryRepository
	TrainingCenters repository.TrainingCenterRepository
	Athletes        repository.AthleteRepository
	Pinger          repository.Pinger
}

// Factory returns fresh, empty repositories and a cleanup func.
type Factory func(t *testing.T) (Repos, func())

func RunCategoryRepositoryContract(t *testing.T, makeRepos Factory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		r, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := r.Categories.Create(ctx, model.Category{Name: "Scale"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if created.ID == uuid.Nil || created.CreatedAt.IsZero() {
			t.Fatalf("expected id and created_at to be set: %+v", created)
		}
		got, err := r.Categories.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != created.ID || got.Name != "Scale" {
			t.Fatalf("mismatch: %+v", got)
		}
		byName, err := r.Categories.GetByName(ctx, "Scale")
		if err != nil || byName.ID != created.ID {
			t.Fatalf("get by name: %+v %v", byName, err)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		r, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := r.Categories.Create(ctx, model.Category{Name: "RX"}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		_, err := r.Categories.Create(ctx, model.Category{Name: "RX"})
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		r, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		if _, err := r.Categories.GetByID(context.Background(), uuid.New()); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if _, err := r.Categories.GetByName(context.Background(), "nope"); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_ordered_by_name", func(t *testing.T) {
		r, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for _, n := range []string{"Masters", "Elite", "Scale"} {
			if _, err := r.Categories.Create(ctx, model.Category{Name: n}); err != nil {
				t.Fatalf("create %s: %v", n, err)
			}
		}
		list, err := r.Categories.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(list) != 3 || list[0].Name != "Elite" || list[1].Name != "Masters" || list[2].Name != "Scale" {
			t.Fatalf("unexpected order: %+v", list)
		}
	})

	t.Run("list_orders_bytewise", func(t *testing.T) {
		r, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for _, n := range []string{"alpha", "Zulu", "Beta"} {
			if _, err := r.Categories.Create(ctx, model.Category{Name: n}); err != nil {
				t.Fatalf("create %s: %v", n, err)
			}
		}
		list, err := r.Categories.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(list) != 3 || list[0].Name != "Beta" || list[1].Name != "Zulu" || list[2].Name != "alpha" {
			t.Fatalf("unexpected order: %+v", list)
		}
	})

	t.Run("list_empty_not_nil", func(t *testing.T) {
		r, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		list, err := r.Categories.List(context.Background())
		if err != nil || list == nil || len(list) != 0 {
			t.Fatalf("expected empty non-nil list, got %v %v", list, err)
		}
	})
}

func RunTrainingCenterRepositoryContract(t *testing.T, makeRepos Factory) {
	t.Helper()

	t.Run("create_get_list", func(t *testing.T) {
		r, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := r.TrainingCenters.Create(ctx, model.TrainingCenter{Name: "CT King", Address: "Rua X, 10", Owner: "Marcos"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := r.TrainingCenters.GetByID(ctx, created.ID)
		if err != nil || got.Address != "Rua X, 10" || got.Owner != "Marcos" {
			t.Fatalf("get: %+v %v", got, err)
		}
		if _, err := r.TrainingCenters.GetByName(ctx, "CT King"); err != nil {
			t.Fatalf("get by name: %v", err)
		}
		list, err := r.TrainingCenters.List(ctx)
		if err != nil || len(list) != 1 {
			t.Fatalf("list: %+v %v", list, err)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		r, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		tc := model.TrainingCenter{Name: "CT Box", Address: "A", Owner: "B"}
		if _, err := r.TrainingCenters.Create(ctx, tc); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if _, err := r.TrainingCenters.Create(ctx, tc); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		r, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		if _, err := r.TrainingCenters.GetByID(context.Background(), uuid.New()); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func RunAthleteRepositoryContract(t *testing.T, makeRepos Factory) {
	t.Helper()

	seed := func(t *testing.T, r Repos) {
		t.Helper()
		ctx := context.Background()
		if _, err := r.Categories.Create(ctx, model.Category{Name: "Scale"}); err != nil {
			t.Fatalf("seed category: %v", err)
		}
		if _, err := r.TrainingCenters.Create(ctx, model.TrainingCenter{Name: "CT King", Address: "A", Owner: "B"}); err != nil {
			t.Fatalf("seed center: %v", err)
		}
	}
	athlete := func(name, cpf string) model.Athlete {
		return model.Athlete{
			Name: name, CPF: cpf, Age: 30, Weight: 75.5, Height: 1.7, Sex: "M",
			Category:       model.NamedRef{Name: "Scale"},
			TrainingCenter: model.NamedRef{Name: "CT King"},
		}
	}

	t.Run("create_resolves_names", func(t *testing.T) {
		r, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		seed(t, r)
		ctx := context.Background()
		created, err := r.Athletes.Create(ctx, athlete("Joao", "12345678900"))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := r.Athletes.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Category.Name != "Scale" || got.TrainingCenter.Name != "CT King" || got.CPF != "12345678900" {
			t.Fatalf("unexpected athlete: %+v", got)
		}
	})

	t.Run("create_unknown_category", func(t *testing.T) {
		r, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		seed(t, r)
		a := athlete("Joao", "12345678900")
		a.Category.Name = "Ghost"
		if _, err := r.Athletes.Create(context.Background(), a); !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("duplicate_cpf", func(t *testing.T) {
		r, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		seed(t, r)
		ctx := context.Background()
		if _, err := r.Athletes.Create(ctx, athlete("Joao", "12345678900")); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if _, err := r.Athletes.Create(ctx, athlete("Maria", "12345678900")); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("list_filters_and_order", func(t *testing.T) {
		r, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		seed(t, r)
		ctx := context.Background()
		for i, n := range []string{"Carla", "Ana", "Bruno"} {
			cpf := "0000000000" + string(rune('0'+i))
			if _, err := r.Athletes.Create(ctx, athlete(n, cpf)); err != nil {
				t.Fatalf("create %s: %v", n, err)
			}
		}
		all, err := r.Athletes.List(ctx, model.AthleteFilter{})
		if err != nil || len(all) != 3 || all[0].Name != "Ana" || all[2].Name != "Carla" {
			t.Fatalf("list all: %+v %v", all, err)
		}
		byName, err := r.Athletes.List(ctx, model.AthleteFilter{Name: "Bruno"})
		if err != nil || len(byName) != 1 || byName[0].Name != "Bruno" {
			t.Fatalf("by name: %+v %v", byName, err)
		}
		byCPF, err := r.Athletes.List(ctx, model.AthleteFilter{CPF: "00000000000"})
		if err != nil || len(byCPF) != 1 || byCPF[0].Name != "Carla" {
			t.Fatalf("by cpf: %+v %v", byCPF, err)
		}
	})

	t.Run("update_and_delete", func(t *testing.T) {
		r, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		seed(t, r)
		ctx := context.Background()
		created, err := r.Athletes.Create(ctx, athlete("Joao", "12345678900"))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		age := 31
		updated, err := r.Athletes.Update(ctx, created.ID, model.AthletePatch{Age: &age})
		if err != nil || updated.Age != 31 || updated.Name != "Joao" {
			t.Fatalf("update: %+v %v", updated, err)
		}
		if err := r.Athletes.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := r.Athletes.Delete(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
		if _, err := r.Athletes.Update(ctx, created.ID, model.AthletePatch{Age: &age}); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on update, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makeRepos Factory) {
	t.Helper()
	r, cleanup := makeRepos(t)
	t.Cleanup(cleanup)
	if err := r.Pinger.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}
