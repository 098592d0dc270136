package hotel

import (
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultPage         = 1
	defaultPageSize     = 10
	defaultRecommendMax = 5
	maxPageSize         = 50
	maxPage             = 1000
)

// cityPlaceholders are picker labels that mean "no city chosen".
var cityPlaceholders = map[string]bool{
	"全部":    true,
	"定位中...": true,
	"请选择城市": true,
}

func decodeLenient(s string, logger *zap.Logger) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		logger.Debug("Keeping undecodable query value", zap.String("value", s), zap.Error(err))
		return s
	}
	return decoded
}

// NormalizeCity maps picker output to a region filter. "省/市/区" paths keep
// their last segment; placeholders and blanks mean no filter.
func NormalizeCity(city string, logger *zap.Logger) string {
	if city == "" || cityPlaceholders[city] {
		return ""
	}
	city = decodeLenient(city, logger)
	if strings.Contains(city, "/") {
		parts := strings.Split(city, "/")
		if last := strings.TrimSpace(parts[len(parts)-1]); last != "" {
			city = last
		}
	}
	return strings.TrimSpace(city)
}

func NormalizeKeyword(keyword string, logger *zap.Logger) string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return ""
	}
	return strings.TrimSpace(decodeLenient(keyword, logger))
}
