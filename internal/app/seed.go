package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"research-tracker/internal/config"
	"research-tracker/internal/domain"
)

// seedFile is the YAML shape of an optional dev seed file.
type seedFile struct {
	Users []struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		FullName string `yaml:"fullName"`
		Role     string `yaml:"role"`
	} `yaml:"users"`
	Projects []struct {
		Title   string   `yaml:"title"`
		Summary string   `yaml:"summary"`
		Status  string   `yaml:"status"`
		Tags    string   `yaml:"tags"`
		PI      string   `yaml:"pi"`
		Members []string `yaml:"members"`
	} `yaml:"projects"`
}

type seeder struct {
	users    domain.UserRepository
	projects domain.ProjectRepository
	members  domain.MembershipRepository
	logger   *slog.Logger
}

// run bootstraps the admin account from the environment and loads the
// optional YAML seed file. Both steps are idempotent: identities that
// already exist are left untouched.
func (s *seeder) run(ctx context.Context, cfg *config.Config) error {
	if cfg.AdminUsername != "" {
		if err := s.createUser(ctx, cfg.AdminUsername, cfg.AdminPassword, "Administrator", domain.RoleAdmin); err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	}
	if cfg.SeedFile == "" {
		return nil
	}
	return s.loadSeedFile(ctx, cfg.SeedFile)
}

func (s *seeder) loadSeedFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	for _, u := range seed.Users {
		role, err := domain.ParseRole(u.Role)
		if err != nil {
			return fmt.Errorf("seed user %q: %w", u.Username, err)
		}
		if err := s.createUser(ctx, u.Username, u.Password, u.FullName, role); err != nil {
			return fmt.Errorf("seed user %q: %w", u.Username, err)
		}
	}

	for _, p := range seed.Projects {
		if err := s.createProject(ctx, p.Title, p.Summary, p.Status, p.Tags, p.PI, p.Members); err != nil {
			return fmt.Errorf("seed project %q: %w", p.Title, err)
		}
	}

	s.logger.Info("seed file applied", "path", path,
		"users", len(seed.Users), "projects", len(seed.Projects))
	return nil
}

func (s *seeder) createUser(ctx context.Context, username, password, fullName string, role domain.Role) error {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil // already present
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.users.Create(ctx, &domain.User{
		ID:           domain.NewID(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
	})
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return nil
	}
	return err
}

func (s *seeder) createProject(ctx context.Context, title, summary, status, tags, piUsername string, memberNames []string) error {
	pi, err := s.users.GetByUsername(ctx, piUsername)
	if err != nil {
		return fmt.Errorf("owning PI %q: %w", piUsername, err)
	}

	// Project titles aren't unique, so idempotence is by title scan.
	existing, _, err := s.projects.List(ctx, domain.PageRequest{MaxResults: domain.MaxMaxResults})
	if err != nil {
		return err
	}
	var project *domain.Project
	for i := range existing {
		if existing[i].Title == title {
			project = &existing[i]
			break
		}
	}

	if project == nil {
		st := domain.ProjectStatus(status)
		if status == "" {
			st = domain.StatusPlanning
		}
		if !st.Valid() {
			return fmt.Errorf("unknown status %q", status)
		}
		project, err = s.projects.Create(ctx, &domain.Project{
			ID:      domain.NewID(),
			Title:   title,
			Summary: summary,
			Status:  st,
			PIID:    pi.ID,
			Tags:    tags,
		})
		if err != nil {
			return err
		}
	}

	// Membership adds are idempotent, so re-running is safe either way.
	for _, name := range memberNames {
		member, err := s.users.GetByUsername(ctx, name)
		if err != nil {
			return fmt.Errorf("member %q: %w", name, err)
		}
		if err := s.members.Add(ctx, project.ID, member.ID); err != nil {
			return err
		}
	}
	return nil
}
