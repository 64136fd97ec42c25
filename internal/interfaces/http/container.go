package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/helpdesk-inc/helpdesk/internal/application/access"
	"github.com/helpdesk-inc/helpdesk/internal/application/ticket/dto"
	ticketUsecases "github.com/helpdesk-inc/helpdesk/internal/application/ticket/usecases"
	userUsecases "github.com/helpdesk-inc/helpdesk/internal/application/user/usecases"
	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-inc/helpdesk/internal/domain/user"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/auth"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/config"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/identity"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/permission"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/ratelimit"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/repository"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/storage"
	"github.com/helpdesk-inc/helpdesk/internal/interfaces/http/handlers"
	tickethandlers "github.com/helpdesk-inc/helpdesk/internal/interfaces/http/handlers/ticket"
	"github.com/helpdesk-inc/helpdesk/internal/interfaces/http/middleware"
	shareddb "github.com/helpdesk-inc/helpdesk/internal/shared/db"
	"github.com/helpdesk-inc/helpdesk/internal/shared/i18n"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
	"github.com/helpdesk-inc/helpdesk/internal/shared/services/markdown"
)

// Container holds the infrastructure, repositories, use cases and handlers
// of the HTTP server and wires them together.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases

	ticketHandler *tickethandlers.TicketHandler
	authHandler   *handlers.AuthHandler
	healthHandler *handlers.HealthHandler

	authMiddleware *middleware.AuthMiddleware
	createLimiter  ratelimit.Limiter
	loginLimiter   ratelimit.Limiter
}

type repositories struct {
	ticketRepo  ticket.TicketRepository
	messageRepo ticket.MessageRepository
	fileRepo    ticket.FileRepository
	userRepo    user.Repository
}

type allUseCases struct {
	createTicket     *ticketUsecases.CreateTicketUseCase
	getTicket        *ticketUsecases.GetTicketUseCase
	addMessage       *ticketUsecases.AddMessageUseCase
	changeStatus     *ticketUsecases.ChangeStatusUseCase
	getEditTicket    *ticketUsecases.GetEditTicketUseCase
	updateTicket     *ticketUsecases.UpdateTicketUseCase
	listAdminTickets *ticketUsecases.ListAdminTicketsUseCase
	listMyTickets    *ticketUsecases.ListMyTicketsUseCase
	checkNewTickets  *ticketUsecases.CheckNewTicketsUseCase
	download         *ticketUsecases.DownloadAttachmentUseCase
	login            *userUsecases.LoginUseCase
}

// NewContainer builds every component the routes need. db must already be
// migrated.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{db: db, cfg: cfg, log: log}

	c.repos = &repositories{
		ticketRepo:  repository.NewTicketRepository(db, log),
		messageRepo: repository.NewMessageRepository(db),
		fileRepo:    repository.NewFileRepository(db),
		userRepo:    repository.NewUserRepository(db, log),
	}

	enforcer, err := permission.NewEnforcer(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := permission.SeedDefaultPolicies(enforcer); err != nil {
		return nil, fmt.Errorf("failed to seed permission policies: %w", err)
	}

	collision, err := storage.ParseCollisionPolicy(cfg.Uploads.CollisionPolicy)
	if err != nil {
		return nil, err
	}
	blobs := storage.NewLocalStore(cfg.Uploads.Dir, collision, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	c.ucs = c.initUseCases(
		shareddb.NewTransactionManager(db),
		access.NewGate(enforcer, log),
		blobs,
		dto.NewPresenter(markdown.NewRenderer(), i18n.NewLocalizer(cfg.Server.Locale)),
		hasher,
		jwtService,
	)

	c.initRateLimiters()

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	c.ticketHandler = tickethandlers.NewTicketHandler(
		c.ucs.createTicket,
		c.ucs.getTicket,
		c.ucs.addMessage,
		c.ucs.changeStatus,
		c.ucs.getEditTicket,
		c.ucs.updateTicket,
		c.ucs.listAdminTickets,
		c.ucs.listMyTickets,
		c.ucs.checkNewTickets,
		c.ucs.download,
		identity.NewResolver(cfg.Identity.PCNameOverride),
		log,
	)
	c.authHandler = handlers.NewAuthHandler(c.ucs.login, cfg.Auth.Cookie, log)
	c.healthHandler = handlers.NewHealthHandler(sqlDB, log)
	c.authMiddleware = middleware.NewAuthMiddleware(jwtService, log)

	c.engine = gin.New()
	c.engine.MaxMultipartMemory = 8 << 20

	return c, nil
}

func (c *Container) initUseCases(
	tx shareddb.TxRunner,
	gate *access.Gate,
	blobs ticketUsecases.BlobStore,
	presenter *dto.Presenter,
	hasher userUsecases.PasswordHasher,
	tokens userUsecases.TokenIssuer,
) *allUseCases {
	r := c.repos
	log := c.log
	attachments := ticketUsecases.NewAttachmentPolicy(c.cfg.Uploads.AllowedExtensions, c.cfg.Uploads.MaxFileSize)

	return &allUseCases{
		createTicket:     ticketUsecases.NewCreateTicketUseCase(tx, r.ticketRepo, r.fileRepo, blobs, attachments, log),
		getTicket:        ticketUsecases.NewGetTicketUseCase(tx, r.ticketRepo, r.messageRepo, r.fileRepo, gate, presenter, log),
		addMessage:       ticketUsecases.NewAddMessageUseCase(tx, r.ticketRepo, r.messageRepo, gate, log),
		changeStatus:     ticketUsecases.NewChangeStatusUseCase(tx, r.ticketRepo, gate, log),
		getEditTicket:    ticketUsecases.NewGetEditTicketUseCase(r.ticketRepo, gate, log),
		updateTicket:     ticketUsecases.NewUpdateTicketUseCase(tx, r.ticketRepo, gate, log),
		listAdminTickets: ticketUsecases.NewListAdminTicketsUseCase(tx, r.ticketRepo, gate, presenter, log),
		listMyTickets:    ticketUsecases.NewListMyTicketsUseCase(r.ticketRepo, presenter, log),
		checkNewTickets:  ticketUsecases.NewCheckNewTicketsUseCase(r.ticketRepo, gate, log),
		download:         ticketUsecases.NewDownloadAttachmentUseCase(r.fileRepo, blobs, log),
		login:            userUsecases.NewLoginUseCase(r.userRepo, hasher, tokens, log),
	}
}

// initRateLimiters connects to Redis when enabled. An unreachable Redis
// leaves the endpoints unlimited rather than failing startup.
func (c *Container) initRateLimiters() {
	rc := c.cfg.Redis
	if !rc.Enabled {
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     rc.GetAddr(),
		Password: rc.Password,
		DB:       rc.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		c.log.Warnw("redis unavailable, rate limiting disabled", "addr", rc.GetAddr(), "error", err)
		_ = client.Close()
		return
	}

	c.redis = client
	c.createLimiter = ratelimit.NewRedisRateLimiter(client, "create_ticket", rc.RateLimitRequests, rc.RateLimitWindow())
	c.loginLimiter = ratelimit.NewRedisRateLimiter(client, "login", rc.RateLimitRequests, rc.RateLimitWindow())
	c.log.Infow("rate limiting enabled", "addr", rc.GetAddr(), "requests", rc.RateLimitRequests, "window", rc.RateLimitWindow())
}

// Shutdown releases the connections the container opened.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
