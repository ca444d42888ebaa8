// Package app wires repositories, services, and handlers into a running
// application.
package app

import (
	"context"
	"database/sql"
	"log/slog"

	"research-tracker/internal/api"
	"research-tracker/internal/auth"
	"research-tracker/internal/config"
	"research-tracker/internal/db/repository"
	"research-tracker/internal/domain"
	"research-tracker/internal/service/research"
	"research-tracker/internal/service/security"
	"research-tracker/internal/storage"
)

// Deps holds the external dependencies that main() must provide: database
// handles, config, and the logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups the service pointers the API handler and CLI need.
type Services struct {
	Auth       *auth.Service
	Users      *research.UserService
	Projects   *research.ProjectService
	Milestones *research.MilestoneService
	Documents  *research.DocumentService
	Membership *security.MembershipService
}

// App is the fully wired application.
type App struct {
	Services Services
	Handler  *api.Handler
	Verifier *auth.TokenVerifier
	Sweeper  *Sweeper
}

// New wires everything from the provided deps, picks the blob store (S3 when
// configured, local directory otherwise), and runs idempotent seeding.
func New(ctx context.Context, deps Deps) (*App, error) {
	cfg := deps.Cfg

	// Mutations go through the single-connection write pool; lookups and
	// listings go through the read pool.
	users := repository.NewUserRepo(deps.WriteDB, deps.ReadDB)
	projects := repository.NewProjectRepo(deps.WriteDB, deps.ReadDB)
	members := repository.NewMembershipRepo(deps.WriteDB, deps.ReadDB)
	milestones := repository.NewMilestoneRepo(deps.WriteDB, deps.ReadDB)
	docs := repository.NewDocumentRepo(deps.WriteDB, deps.ReadDB)

	var blobs storage.BlobStore
	if cfg.HasS3Config() {
		opts := storage.S3Options{
			Region: *cfg.S3Region,
			KeyID:  *cfg.S3KeyID,
			Secret: *cfg.S3Secret,
			Bucket: *cfg.S3Bucket,
		}
		if cfg.S3Endpoint != nil {
			opts.Endpoint = *cfg.S3Endpoint
		}
		s3Store, err := storage.NewS3Store(opts)
		if err != nil {
			return nil, err
		}
		blobs = s3Store
		deps.Logger.Info("document storage: s3", "bucket", opts.Bucket)
	} else {
		localStore, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			return nil, err
		}
		blobs = localStore
		deps.Logger.Info("document storage: local", "dir", cfg.UploadDir)
	}

	issuer := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.SessionTTL)
	verifier := auth.NewTokenVerifier([]byte(cfg.JWTSecret))
	authz := security.NewAuthorizationService(users, projects, members)

	services := Services{
		Auth:       auth.NewService(users, issuer),
		Users:      research.NewUserService(authz, users),
		Projects:   research.NewProjectService(authz, projects, users, docs, blobs, deps.Logger),
		Milestones: research.NewMilestoneService(authz, milestones, projects, users),
		Documents:  research.NewDocumentService(authz, docs, projects, users, blobs, deps.Logger),
		Membership: security.NewMembershipService(authz, users, projects, members),
	}

	seeder := &seeder{users: users, projects: projects, members: members, logger: deps.Logger}
	if err := seeder.run(ctx, cfg); err != nil {
		return nil, err
	}

	handler := api.NewHandler(
		services.Auth,
		services.Users,
		services.Projects,
		services.Milestones,
		services.Documents,
		services.Membership,
		deps.Logger,
	)

	return &App{
		Services: services,
		Handler:  handler,
		Verifier: verifier,
		Sweeper:  NewSweeper(docs, blobs, deps.Logger),
	}, nil
}

var _ domain.UserRepository = (*repository.UserRepo)(nil)
var _ domain.ProjectRepository = (*repository.ProjectRepo)(nil)
var _ domain.MembershipRepository = (*repository.MembershipRepo)(nil)
var _ domain.MilestoneRepository = (*repository.MilestoneRepo)(nil)
var _ domain.DocumentRepository = (*repository.DocumentRepo)(nil)
