package service

import (
	"strconv"
	"strings"

	apientity "yield_tracker/internal/entity"
)

// Evidence captures which upstream feeds are worth querying for an address.
// The flags come from cheap heuristics over the wallet's token feed plus one
// lightweight Merkl probe; when gathering fails everything defaults to true
// so no position is silently dropped.
type Evidence struct {
	HasYieldToken   bool `json:"has_yield_token"`
	HasLending      bool `json:"has_lending"`
	HasNFTs         bool `json:"has_nfts"`
	HasMerklRewards bool `json:"has_merkle_rewards"`
}

// AllEvidence is the fallback when evidence gathering itself fails.
func AllEvidence() Evidence {
	return Evidence{HasYieldToken: true, HasLending: true, HasNFTs: true, HasMerklRewards: true}
}

var yieldKeywords = []string{"midas"}

// gatherBalanceEvidence inspects the raw Blockscout feed for yield tokens,
// lending receipts and NFT collections. The Merkl flag is filled in later by
// the orchestrator.
func gatherBalanceEvidence(balances []apientity.BlockscoutTokenBalance) Evidence {
	var evidence Evidence
	for _, balance := range balances {
		name := strings.ToLower(balance.Token.Name)
		for _, keyword := range yieldKeywords {
			if strings.Contains(name, keyword) {
				evidence.HasYieldToken = true
				break
			}
		}
		if looksLikeLendingReceipt(balance) {
			evidence.HasLending = true
		}
		if balance.Token.Type == "ERC-721" {
			evidence.HasNFTs = true
		}
	}
	return evidence
}

// lending receipt prefixes: kTokens (Tropykus), cTokens, aTokens (Avalon),
// lTokens (LayerBank) and variable debt tokens.
var receiptPrefixes = []string{"k", "c", "a", "l", "variable"}

var receiptNameFragments = []string{
	"ktoken", "ltoken", "atoken",
	"layerbank", "avalon", "tropykus",
	"variable", "debt",
}

// looksLikeLendingReceipt applies symbol and name heuristics instead of
// hardcoded addresses. Only positive ERC-20 balances qualify.
func looksLikeLendingReceipt(balance apientity.BlockscoutTokenBalance) bool {
	if balance.Token.Type != "ERC-20" {
		return false
	}
	if !isPositiveValue(balance.Value) {
		return false
	}

	symbol := strings.ToLower(balance.Token.Symbol)
	for _, prefix := range receiptPrefixes {
		if strings.HasPrefix(symbol, prefix) {
			return true
		}
	}
	name := strings.ToLower(balance.Token.Name)
	for _, fragment := range receiptNameFragments {
		if strings.Contains(name, fragment) {
			return true
		}
	}
	return false
}

func isPositiveValue(value string) bool {
	v, err := strconv.ParseFloat(value, 64)
	return err == nil && v > 0
}
