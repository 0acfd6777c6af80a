package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-sitesurvey/internal/config"
	"github.com/goliatone/go-sitesurvey/internal/provider"
	"github.com/goliatone/go-sitesurvey/pkg/location"
	"github.com/goliatone/go-sitesurvey/pkg/resolve"
	"github.com/goliatone/go-sitesurvey/pkg/schema"
	"github.com/goliatone/go-sitesurvey/pkg/session"
)

func main() {
	var (
		lat      = flag.Float64("lat", session.DefaultLat, "latitude of the survey point")
		lng      = flag.Float64("lng", session.DefaultLng, "longitude of the survey point")
		modeFlag = flag.String("mode", string(schema.ModeBaseStation), "survey mode: baseStation or repeater")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !cfg.Kakao.Enabled {
		log.Fatalf("KAKAO_REST_KEY is required: reverse geocoding backs every point selection")
	}

	mode, err := schema.ParseMode(*modeFlag)
	if err != nil {
		log.Fatalf("Invalid mode: %v", err)
	}

	kakao := provider.NewKakao(cfg.Kakao.RESTKey,
		provider.WithKakaoBaseURL(cfg.Kakao.BaseURL),
		provider.WithKakaoRateLimit(cfg.Kakao.RateLimit),
	)
	aggregatorOptions := []location.AggregatorOption{
		location.WithPlaceSearcher(kakao),
		location.WithLookupTimeout(cfg.Survey.LookupTimeout),
		location.WithCachePrecision(cfg.Survey.CachePrecision),
	}
	if cfg.Elevation.Enabled {
		aggregatorOptions = append(aggregatorOptions, location.WithElevationProvider(
			provider.NewOpenElevation(
				provider.WithElevationBaseURL(cfg.Elevation.BaseURL),
				provider.WithElevationRateLimit(cfg.Elevation.RateLimit),
			)))
	}
	if cfg.VWorld.Enabled {
		aggregatorOptions = append(aggregatorOptions, location.WithBuildingProvider(
			provider.NewVWorld(cfg.VWorld.APIKey,
				provider.WithVWorldBaseURL(cfg.VWorld.BaseURL),
				provider.WithVWorldRateLimit(cfg.VWorld.RateLimit),
			)))
	}

	s := session.New(location.NewAggregator(kakao, aggregatorOptions...), session.WithMode(mode))

	ctx := context.Background()
	if err := s.SelectPoint(ctx, *lat, *lng); err != nil {
		log.Fatalf("Failed to resolve location: %v", err)
	}

	if err := runSurvey(ctx, newSurveyDriver(), s); err != nil {
		if errors.Is(err, ErrAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(1)
		}
		log.Fatalf("Survey failed: %v", err)
	}
}

// runSurvey walks the resolved instances in order, prompting for each one.
// Answers change visibility and repeat counts, so the instance list is
// re-resolved after every answer and the walk continues at the first
// unanswered instance.
func runSurvey(ctx context.Context, driver PromptDriver, s *session.Session) error {
	if loc := s.Location(); loc != nil {
		if err := driver.Info(ctx, fmt.Sprintf("위치: %s / %s", loc.Address, loc.RoadAddress)); err != nil {
			return err
		}
	}

	asked := make(map[string]bool)
	for {
		instances, err := s.Fields()
		if err != nil {
			return err
		}

		next, ok := nextUnanswered(instances, asked)
		if !ok {
			break
		}

		if next.Section != "" {
			if err := driver.Info(ctx, "\n"+next.Section); err != nil {
				return err
			}
		}
		value, err := prompt(ctx, driver, next)
		if err != nil {
			return err
		}
		s.SetAnswer(next.Key, value)
		asked[next.Key] = true
	}

	report, err := s.Report()
	if err != nil {
		return err
	}
	return driver.Info(ctx, "\n"+report)
}

func nextUnanswered(instances []resolve.Instance, asked map[string]bool) (resolve.Instance, bool) {
	for _, inst := range instances {
		if !asked[inst.Key] {
			return inst, true
		}
	}
	return resolve.Instance{}, false
}

func prompt(ctx context.Context, driver PromptDriver, inst resolve.Instance) (string, error) {
	field := inst.Field
	switch field.Kind {
	case schema.InputSelect, schema.InputRadio:
		labels := optionLabels(field.Options)
		idx, err := driver.Select(ctx, SelectConfig{
			Message:  inst.Label,
			Options:  labels,
			PageSize: 10,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 {
			return "", nil
		}
		return field.Options[idx].Value, nil
	case schema.InputCheckbox:
		labels := optionLabels(field.Options)
		indices, err := driver.MultiSelect(ctx, SelectConfig{
			Message:  inst.Label,
			Options:  labels,
			PageSize: 10,
		})
		if err != nil {
			return "", err
		}
		values := make([]string, 0, len(indices))
		for _, idx := range indices {
			values = append(values, field.Options[idx].Value)
		}
		return strings.Join(values, ","), nil
	case schema.InputTextarea:
		return driver.TextArea(ctx, TextAreaConfig{Message: inst.Label})
	default:
		return driver.Input(ctx, InputConfig{
			Message: inst.Label,
			Help:    field.Placeholder,
		})
	}
}

func optionLabels(options []schema.Option) []string {
	labels := make([]string, len(options))
	for i, option := range options {
		labels[i] = option.Label
	}
	return labels
}
