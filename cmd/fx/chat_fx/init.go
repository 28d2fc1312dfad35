package chat_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"superagent/internal/api/controllers"
	"superagent/internal/config"
	"superagent/internal/repositories"
	"superagent/internal/services"
	mem "superagent/pkg/memcache"
	"superagent/pkg/utils"
)

var Module = fx.Provide(
	provideCompletionService,
	provideChatService,
	provideChatController,
)

func provideCompletionService(
	sheetRepo repositories.SheetRepository,
	mailer services.IMailService,
	clock utils.Clock,
	cfg config.Config,
	logger *zap.Logger,
) services.CompletionServiceInterface {
	return services.NewCompletionService(sheetRepo, mailer, clock, cfg.SinkTimeout, logger.Named("completion"))
}

func provideChatService(
	store mem.SessionStore,
	completion services.CompletionServiceInterface,
	clock utils.Clock,
	cfg config.Config,
	logger *zap.Logger,
) services.ChatServiceInterface {
	return services.NewChatService(store, completion, clock, cfg.ContactWhatsApp, logger.Named("chat"))
}

func provideChatController(
	chatService services.ChatServiceInterface,
	clock utils.Clock,
	logger *zap.Logger,
) *controllers.ChatController {
	return controllers.NewChatController(chatService, clock, logger.Named("http"))
}
