package backend

import (
	"strings"

	dto "wallet-assets/internal/adapter/storage/backend/dto"
	"wallet-assets/internal/domain/entity"

	"go.uber.org/zap"
)

// toDomainTokens converts raw registry tokens into domain tokens, skipping
// entries without a symbol or with a malformed contract address.
func toDomainTokens(raw []dto.TokenRaw, logger *zap.Logger) []entity.Token {
	if raw == nil {
		return nil
	}
	tokens := make([]entity.Token, 0, len(raw))
	for _, t := range raw {
		if strings.TrimSpace(t.Symbol) == "" {
			logger.Warn("Skipping registry token without symbol", zap.String("contractAddress", t.ContractAddress))
			continue
		}
		if err := entity.ValidateContractAddress(t.ContractAddress); err != nil {
			logger.Warn("Skipping registry token with invalid address",
				zap.String("symbol", t.Symbol),
				zap.Error(err))
			continue
		}

		var chainID entity.ChainID
		if t.ChainID != "" {
			id, err := entity.NewChainID(t.ChainID)
			if err != nil {
				logger.Warn("Ignoring invalid chain id on registry token",
					zap.String("symbol", t.Symbol),
					zap.String("chainId", t.ChainID),
					zap.Error(err))
			} else {
				chainID = id
			}
		}

		tokens = append(tokens, entity.Token{
			ContractAddress: strings.TrimSpace(t.ContractAddress),
			Name:            t.Name,
			Symbol:          t.Symbol,
			Decimals:        t.Decimals,
			Logo:            t.Logo,
			IsFungible:      t.IsErc20,
			IsNonFungible:   t.IsErc721,
			Visible:         t.Visible,
			TokenID:         t.TokenID,
			CoingeckoID:     t.CoingeckoID,
			ChainID:         chainID,
		})
	}
	return tokens
}
