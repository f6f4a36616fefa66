package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripsync/internal/models/response_models"
	"tripsync/pkg/utils"
)

const (
	ImageSourceUnsplash = "unsplash"
	ImageSourceFallback = "fallback"
)

var (
	placeNoise    = regexp.MustCompile(`(?i)\b(United States|USA|US|city|town|state|county)\b`)
	trailingPart  = regexp.MustCompile(`,\s*\w+$`)
	activityNoise = regexp.MustCompile(`(?i)\b(visit|explore|see|go to|check out|walk|stroll|enjoy|experience|discover|tour|the|a|an)\b`)
	extraSpace    = regexp.MustCompile(`\s+`)
)

type ImageServiceInterface interface {
	ImageURL(ctx context.Context, destination, activity, id string) response_models.ImageURLResponse
}

// ImageService resolves a photo for a trip card. Without an Unsplash key, or
// when the lookup fails, it returns a deterministic placeholder instead.
type ImageService struct {
	accessKey string
	baseURL   string
	client    *http.Client
	logger    *zap.Logger
}

func NewImageService(accessKey, baseURL string, timeout time.Duration, logger *zap.Logger) *ImageService {
	return &ImageService{
		accessKey: accessKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

func (s *ImageService) ImageURL(ctx context.Context, destination, activity, id string) response_models.ImageURLResponse {
	fallback := response_models.ImageURLResponse{
		ImageURL: utils.FallbackImageURL(destination, activity, id),
		Source:   ImageSourceFallback,
	}
	if s.accessKey == "" {
		return fallback
	}

	query := strings.TrimSpace(CleanDestination(destination) + " " + ActivityKeywords(activity))
	found, err := s.searchUnsplash(ctx, query)
	if err != nil {
		s.logger.Warn("unsplash lookup failed, using fallback image",
			zap.String("query", query),
			zap.Error(err))
		return fallback
	}
	if found == "" {
		return fallback
	}
	return response_models.ImageURLResponse{ImageURL: found, Source: ImageSourceUnsplash}
}

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

func (s *ImageService) searchUnsplash(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Client-ID "+s.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unsplash returned status %d", resp.StatusCode)
	}

	var body unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode unsplash response: %w", err)
	}
	if len(body.Results) == 0 {
		return "", nil
	}
	return body.Results[0].URLs.Regular, nil
}

// CleanDestination drops country and administrative noise from a place name,
// e.g. "Austin, Texas, United States" becomes "Austin". The input is returned
// unchanged when nothing would be left.
func CleanDestination(destination string) string {
	cleaned := strings.TrimSpace(placeNoise.ReplaceAllString(destination, ""))
	cleaned = strings.TrimRight(cleaned, ", ")
	cleaned = strings.TrimSpace(trailingPart.ReplaceAllString(cleaned, ""))
	cleaned = extraSpace.ReplaceAllString(cleaned, " ")
	if cleaned == "" {
		return strings.TrimSpace(destination)
	}
	return cleaned
}

// ActivityKeywords keeps the first three meaningful words of an itinerary
// line, so "Visit the Senso-ji Temple at dawn" searches for "Senso-ji Temple dawn".
func ActivityKeywords(activity string) string {
	cleaned := strings.TrimSpace(activityNoise.ReplaceAllString(activity, ""))

	var words []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) > 2 {
			words = append(words, w)
		}
		if len(words) == 3 {
			break
		}
	}
	if len(words) == 0 {
		return cleaned
	}
	return strings.Join(words, " ")
}
