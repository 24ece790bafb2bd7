package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
	"github.com/duyet/finance-hub-sub002/internal/model"
	"github.com/duyet/finance-hub-sub002/internal/repository"
)

const feedTokenSettingKey = "market_data_feed_token"

// ErrEncryptionDisabled indicates feed-token storage was requested without a
// configured fernet key.
var ErrEncryptionDisabled = errors.New("feed token encryption key not configured")

// MarketDataService stores the prices pushed by the market-data collaborator
// and the collaborator's feed credential. The credential is fernet-encrypted
// at rest; prices are plain values.
type MarketDataService struct {
	priceRepo   *repository.PriceRepository
	settingRepo *repository.SettingRepository
	fernetKey   *fernet.Key
}

// NewMarketDataService creates a new MarketDataService. fernetKey may be
// empty, which disables feed-token storage but leaves price updates working.
func NewMarketDataService(
	priceRepo *repository.PriceRepository,
	settingRepo *repository.SettingRepository,
	fernetKey string,
) (*MarketDataService, error) {
	s := &MarketDataService{
		priceRepo:   priceRepo,
		settingRepo: settingRepo,
	}

	if fernetKey != "" {
		key, err := fernet.DecodeKey(fernetKey)
		if err != nil {
			return nil, fmt.Errorf("invalid fernet key: %w", err)
		}
		s.fernetKey = key
	}

	return s, nil
}

// UpsertPrices stores the latest price per symbol.
func (s *MarketDataService) UpsertPrices(ctx context.Context, req request.UpsertPricesRequest) (int, error) {
	prices := make([]model.SymbolPrice, 0, len(req.Prices))
	for _, entry := range req.Prices {
		asOf, err := time.Parse("2006-01-02", entry.AsOf)
		if err != nil {
			return 0, fmt.Errorf("invalid as-of date for %s: %w", entry.Symbol, err)
		}
		prices = append(prices, model.SymbolPrice{
			Symbol: entry.Symbol,
			Price:  entry.Price,
			AsOf:   asOf.UTC(),
		})
	}

	if err := s.priceRepo.UpsertPrices(ctx, prices); err != nil {
		return 0, err
	}

	return len(prices), nil
}

// SetFeedToken encrypts and stores the market-data feed credential.
func (s *MarketDataService) SetFeedToken(ctx context.Context, token string) error {
	if s.fernetKey == nil {
		return ErrEncryptionDisabled
	}

	encrypted, err := fernet.EncryptAndSign([]byte(token), s.fernetKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt feed token: %w", err)
	}

	return s.settingRepo.SetSetting(ctx, feedTokenSettingKey, string(encrypted))
}

// FeedToken decrypts and returns the stored market-data feed credential.
func (s *MarketDataService) FeedToken() (string, error) {
	if s.fernetKey == nil {
		return "", ErrEncryptionDisabled
	}

	stored, err := s.settingRepo.GetSetting(feedTokenSettingKey)
	if err != nil {
		return "", err
	}

	token := fernet.VerifyAndDecrypt([]byte(stored), 0, []*fernet.Key{s.fernetKey})
	if token == nil {
		return "", errors.New("failed to decrypt feed token")
	}

	return string(token), nil
}
