package portfolio

import (
	"context"

	"github.com/Zachkp/showcase/internal/supabase"
)

// Source reads the two portfolio collections.
type Source interface {
	Projects(ctx context.Context) ([]Project, error)
	Experiences(ctx context.Context) ([]Experience, error)
}

// SupabaseSource reads the projects and experiences tables, ascending by id.
type SupabaseSource struct {
	Client *supabase.Client
}

func (s SupabaseSource) Projects(ctx context.Context) ([]Project, error) {
	var out []Project
	err := s.Client.Select(ctx, supabase.Query{Table: "projects", Order: "id", Ascending: true}, &out)
	return out, err
}

func (s SupabaseSource) Experiences(ctx context.Context) ([]Experience, error) {
	var out []Experience
	err := s.Client.Select(ctx, supabase.Query{Table: "experiences", Order: "id", Ascending: true}, &out)
	return out, err
}
