// Package calculator combines the stat engine, the type chart and the roster into the
// request/response operations the presentation adapters call.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yanqian/pikacalc/internal/domain/roster"
	"github.com/yanqian/pikacalc/internal/domain/stats"
	"github.com/yanqian/pikacalc/internal/domain/typechart"
	apperrors "github.com/yanqian/pikacalc/pkg/errors"
)

// Service exposes the calculator operations.
type Service interface {
	Calculate(ctx context.Context, req StatsRequest) (StatsResponse, error)
	TargetLevel(ctx context.Context, req TargetRequest) (TargetResponse, error)
	Matchups(ctx context.Context, req MatchupRequest) (MatchupResponse, error)
}

// Config holds defaults applied to incomplete requests.
type Config struct {
	DefaultLevel int
}

// SpeciesLookup resolves a species reference; roster.Service satisfies it.
type SpeciesLookup interface {
	Lookup(ctx context.Context, nameOrID string) (roster.Species, error)
}

type service struct {
	cfg       Config
	species   SpeciesLookup
	validator *validator.Validate
	logger    *slog.Logger
}

// NewService wires up the calculator.
func NewService(cfg Config, species SpeciesLookup, logger *slog.Logger) Service {
	if cfg.DefaultLevel < stats.MinLevel || cfg.DefaultLevel > stats.MaxLevel {
		cfg.DefaultLevel = 50
	}
	return &service{
		cfg:       cfg,
		species:   species,
		validator: validator.New(),
		logger:    logger.With("component", "calculator.service"),
	}
}

func (s *service) Calculate(ctx context.Context, req StatsRequest) (StatsResponse, error) {
	if err := s.validate(req); err != nil {
		return StatsResponse{}, err
	}
	sp, base, err := s.resolveBase(ctx, req.Pokemon, req.BaseStats)
	if err != nil {
		return StatsResponse{}, err
	}
	nature, err := resolveNature(req.Nature)
	if err != nil {
		return StatsResponse{}, err
	}

	level := req.Level
	if level == 0 {
		level = s.cfg.DefaultLevel
	}
	ivs := stats.DefaultIVs()
	if req.IVs != nil {
		if err := checkIVs(*req.IVs); err != nil {
			return StatsResponse{}, err
		}
		ivs = *req.IVs
	}
	evs := stats.DefaultEVs()
	if req.EVs != nil {
		evs = *req.EVs
	}

	return StatsResponse{
		Pokemon:     sp,
		Level:       level,
		Nature:      nature,
		BaseStats:   base,
		IVs:         ivs,
		EVs:         evs,
		Stats:       stats.CalculateAll(base, ivs, evs, level, &nature),
		EVTotal:     stats.TotalEV(evs),
		EVRemaining: stats.RemainingEV(evs),
		Validation:  stats.ValidateEVs(evs),
	}, nil
}

func (s *service) TargetLevel(ctx context.Context, req TargetRequest) (TargetResponse, error) {
	if err := s.validate(req); err != nil {
		return TargetResponse{}, err
	}
	stat, err := stats.ParseStatName(strings.ToLower(strings.TrimSpace(req.Stat)))
	if err != nil {
		return TargetResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	_, base, err := s.resolveBase(ctx, req.Pokemon, req.BaseStats)
	if err != nil {
		return TargetResponse{}, err
	}
	nature, err := resolveNature(req.Nature)
	if err != nil {
		return TargetResponse{}, err
	}

	iv, ev := stats.MaxIV, 0
	if req.IV != nil {
		iv = *req.IV
	}
	if req.EV != nil {
		ev = *req.EV
	}

	level, found := stats.FindLevelForTargetStat(base.Get(stat), iv, ev, req.Target, stat, &nature)
	return TargetResponse{
		Stat:       stat,
		Target:     req.Target,
		Found:      found,
		Level:      level,
		AtMaxLevel: stats.CalculateStat(base.Get(stat), iv, ev, stats.MaxLevel, stat, &nature),
	}, nil
}

func (s *service) Matchups(ctx context.Context, req MatchupRequest) (MatchupResponse, error) {
	if err := s.validate(req); err != nil {
		return MatchupResponse{}, err
	}

	var (
		sp    *roster.Species
		types []typechart.Type
	)
	if len(req.Types) > 0 {
		parsed, err := typechart.ParseTypes(req.Types)
		if err != nil {
			return MatchupResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
		}
		types = parsed
	} else {
		found, err := s.species.Lookup(ctx, req.Pokemon)
		if err != nil {
			return MatchupResponse{}, err
		}
		sp = &found
		types = found.Types
	}

	return MatchupResponse{
		Pokemon:     sp,
		Types:       types,
		Weaknesses:  typechart.Weaknesses(types),
		Resistances: typechart.Resistances(types),
		Immunities:  typechart.Immunities(types),
		Coverage:    typechart.STABCoverage(types),
	}, nil
}

func (s *service) resolveBase(ctx context.Context, ref string, base *stats.Stats) (*roster.Species, stats.Stats, error) {
	if base != nil {
		return nil, *base, nil
	}
	sp, err := s.species.Lookup(ctx, ref)
	if err != nil {
		return nil, stats.Stats{}, err
	}
	return &sp, sp.BaseStats, nil
}

func resolveNature(key string) (stats.Nature, error) {
	if strings.TrimSpace(key) == "" {
		key = stats.DefaultNatureKey
	}
	n, err := stats.LookupNature(key)
	if err != nil {
		return stats.Nature{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	return n, nil
}

// checkIVs rejects vectors the formula would otherwise clamp, so the echoed IVs always
// match the ones the stats were computed from.
func checkIVs(ivs stats.Stats) error {
	for _, name := range stats.StatNames {
		if v := ivs.Get(name); v < 0 || v > stats.MaxIV {
			return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("%s IV must be between 0 and %d", name.DisplayName(), stats.MaxIV), nil)
		}
	}
	return nil
}

func (s *service) validate(req any) error {
	err := s.validator.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("invalid %s: failed %s", fe.Field(), fe.Tag()), err)
	}
	return apperrors.Wrap(apperrors.CodeInvalidInput, "invalid request", err)
}
