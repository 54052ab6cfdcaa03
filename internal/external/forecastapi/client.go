package forecastapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
	"github.com/wonny/bunkerwatch/backend/pkg/httputil"
	"github.com/wonny/bunkerwatch/backend/pkg/logger"
)

// ErrMalformedRecord 응답 레코드 파싱 실패
var ErrMalformedRecord = errors.New("malformed forecast record")

// Client handles communication with the forecast backend
// ⭐ SSOT: 예측 API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	token      string
}

// NewClient creates a new forecast API client
func NewClient(httpClient *httputil.Client, baseURL, token string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// Record 백엔드 응답 레코드
type Record struct {
	CurrentDate    string  `json:"current_date"`
	PredictedDate  string  `json:"predicted_date"`
	PredictedValue float64 `json:"predicted_value"`
	NDaysAhead     int     `json:"n_days_ahead"`
}

// page 페이지네이션 형태 응답 ({"results": [...]})
type page struct {
	Results []Record `json:"results"`
}

// GetForecasts 제품별 예측 조회 (procurement.ForecastSource 구현)
func (c *Client) GetForecasts(ctx context.Context, product string) ([]contracts.ForecastPoint, error) {
	endpoint := fmt.Sprintf("%s/forecasts?%s", c.baseURL, url.Values{"product": {product}}.Encode())

	headers := map[string]string{"Accept": "application/json"}
	if c.token != "" {
		headers["Authorization"] = "Bearer " + c.token
	}

	var raw json.RawMessage
	if err := c.httpClient.GetJSON(ctx, endpoint, headers, &raw); err != nil {
		return nil, fmt.Errorf("fetch forecasts: %w", err)
	}

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}

	points, err := ToPoints(records)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"product": product,
		"records": len(points),
	}).Debug("Forecasts fetched")

	return points, nil
}

// decodeRecords 배열 또는 {"results": [...]} 형태 모두 허용
func decodeRecords(raw json.RawMessage) ([]Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var records []Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode forecast list: %w", err)
		}
		return records, nil
	}

	var p page
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, fmt.Errorf("decode forecast page: %w", err)
	}
	return p.Results, nil
}

// ToPoints 레코드 → ForecastPoint (하나라도 깨지면 전체 거부)
func ToPoints(records []Record) ([]contracts.ForecastPoint, error) {
	points := make([]contracts.ForecastPoint, 0, len(records))
	for i, r := range records {
		current, err := ParseDate(r.CurrentDate)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d current_date: %v", ErrMalformedRecord, i, err)
		}
		predicted, err := ParseDate(r.PredictedDate)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d predicted_date: %v", ErrMalformedRecord, i, err)
		}
		if r.NDaysAhead < 0 {
			return nil, fmt.Errorf("%w: record %d negative n_days_ahead", ErrMalformedRecord, i)
		}

		points = append(points, contracts.ForecastPoint{
			CurrentDate:    current,
			PredictedDate:  predicted,
			PredictedValue: r.PredictedValue,
			NDaysAhead:     r.NDaysAhead,
		})
	}
	return points, nil
}

// ParseDate ISO 날짜 또는 타임스탬프 → UTC 자정
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layouts := []string{contracts.DateLayout, time.RFC3339Nano, "2006-01-02T15:04:05"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return contracts.TruncateDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
