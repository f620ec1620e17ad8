package settings

import (
	"context"
	"errors"
	"net/url"

	"chronopay-gw/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
	Install(ctx context.Context) error
	Uninstall(ctx context.Context) error
	IsInstalled(ctx context.Context) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Load(ctx context.Context) (Settings, error) {
	st, err := s.repo.Load(ctx)
	if err != nil {
		return Settings{}, err
	}
	return *st, nil
}

func (s *service) Save(ctx context.Context, st Settings) error {
	if err := Validate(st); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, st); err != nil {
		logger.FromCtx(ctx).Error("failed to save chronopay settings", zap.Error(err))
		return err
	}
	logger.FromCtx(ctx).Info("chronopay settings saved",
		zap.String("gateway_url", st.GatewayURL),
		zap.String("product_id", st.ProductID),
	)
	return nil
}

// Install seeds default settings unless some are already stored.
func (s *service) Install(ctx context.Context) error {
	installed, err := s.IsInstalled(ctx)
	if err != nil {
		return err
	}
	if installed {
		return nil
	}
	if err := s.repo.Save(ctx, Defaults()); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("chronopay payment method installed")
	return nil
}

func (s *service) Uninstall(ctx context.Context) error {
	if err := s.repo.Delete(ctx); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("chronopay payment method uninstalled")
	return nil
}

func (s *service) IsInstalled(ctx context.Context) (bool, error) {
	_, err := s.repo.Load(ctx)
	if errors.Is(err, ErrNotInstalled) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Validate checks the fields an admin can get wrong. Empty product and secret
// values are accepted; signatures then degrade but stay well-defined.
func Validate(s Settings) error {
	u, err := url.Parse(s.GatewayURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidGatewayURL
	}
	if s.AdditionalFee.IsNegative() {
		return ErrNegativeFee
	}
	return nil
}
