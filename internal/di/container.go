package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/avenaparisshop/avena-sav-app/internal/adapters/rulestore"
	"github.com/avenaparisshop/avena-sav-app/internal/classifier"
	"github.com/avenaparisshop/avena-sav-app/internal/config"
	"github.com/avenaparisshop/avena-sav-app/internal/core"
	"github.com/avenaparisshop/avena-sav-app/internal/factory"
	"github.com/avenaparisshop/avena-sav-app/internal/logging"
	"github.com/avenaparisshop/avena-sav-app/internal/ports"
	"github.com/avenaparisshop/avena-sav-app/internal/rules"
	"github.com/avenaparisshop/avena-sav-app/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register rule store, replaying the persisted overlay when enabled
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (*rules.Store, error) {
		rulesCfg := cfg.GetRules()
		store, err := rules.NewStore(logger, rulesCfg.MaxPatternLength)
		if err != nil {
			return nil, err
		}
		if rulesCfg.Persist {
			persisted, err := rulestore.NewSQLiteRuleStore(rulesCfg.SQLitePath, logger)
			if err != nil {
				return nil, err
			}
			defer persisted.Close()
			if _, err := persisted.LoadInto(context.Background(), store); err != nil {
				return nil, err
			}
		}
		return store, nil
	}); err != nil {
		return nil, err
	}

	// Register the rule classifier
	if err := container.Provide(func(
		store *rules.Store,
		cfg *config.Config,
		processor *utils.TextProcessor,
		logger *zap.Logger,
	) core.Classifier {
		return classifier.New(store, cfg.GetSpam(), processor, logger)
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewReviewFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewFilterFactory); err != nil {
		return nil, err
	}

	// Register review client
	if err := container.Provide(func(f *factory.ReviewFactory) (core.ReviewClient, error) {
		return f.CreateReviewClient()
	}); err != nil {
		return nil, err
	}

	// Register review cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.VerdictCache, error) {
		return f.CreateVerdictCache()
	}); err != nil {
		return nil, err
	}

	// Register classifier service
	if err := container.Provide(func(
		ruleClassifier core.Classifier,
		reviewer core.ReviewClient,
		cache core.VerdictCache,
		logger *zap.Logger,
		cacheFactory *factory.CacheFactory,
		cfg *config.Config,
	) (*core.ClassifierService, error) {
		cacheTTL, err := cacheFactory.GetCacheTTL()
		if err != nil {
			return nil, err
		}
		reviewCfg := cfg.GetReview()
		return core.NewClassifierService(
			ruleClassifier,
			reviewer,
			cache,
			logger,
			cacheFactory.IsCacheEnabled(),
			cacheTTL,
			cfg.GetFloat64("spam.threshold"),
			reviewCfg.Enabled,
			reviewCfg.BandLow,
		), nil
	}); err != nil {
		return nil, err
	}

	// Register email filter
	if err := container.Provide(func(f *factory.FilterFactory) (ports.EmailFilter, error) {
		return f.CreateEmailFilter()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
