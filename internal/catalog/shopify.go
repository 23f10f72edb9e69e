package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
	"golang.org/x/time/rate"

	"github.com/Veraticus/stylist/internal/common"
	"github.com/Veraticus/stylist/internal/model"
	"github.com/Veraticus/stylist/internal/service"
)

// DefaultShopifyAPIVersion is the Admin REST API version used when none is configured.
const DefaultShopifyAPIVersion = "2024-10"

const shopifyDomainSuffix = ".myshopify.com"

// shopHandlePattern matches a bare store handle such as "boutique".
var shopHandlePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

var nextLinkPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// ShopifyConfig configures a ShopifySource.
type ShopifyConfig struct {
	Logger     *slog.Logger
	Domain     string
	Token      string
	APIVersion string
	// BaseURL overrides https://<domain>, mainly for tests.
	BaseURL string
	Retry   service.RetryOptions
	Timeout time.Duration
}

// ShopifySource reads active products from the Shopify Admin REST API.
type ShopifySource struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	domain      string
	token       string
	apiVersion  string
	baseURL     string
	retry       service.RetryOptions
}

// NewShopifySource creates a Shopify catalog source.
func NewShopifySource(cfg ShopifyConfig) (*ShopifySource, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: shopify access token", common.ErrMissingConfig)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultShopifyAPIVersion
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &ShopifySource{
		httpClient: &http.Client{Timeout: timeout},
		// Shopify's REST bucket leaks at 2 requests per second.
		rateLimiter: rate.NewLimiter(rate.Limit(2), 4),
		logger:      logger,
		domain:      normalizeShopDomain(cfg.Domain),
		token:       cfg.Token,
		apiVersion:  apiVersion,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		retry:       cfg.Retry,
	}, nil
}

type shopifyProduct struct {
	ID          any    `json:"id"`
	Title       string `json:"title"`
	BodyHTML    string `json:"body_html"`
	Vendor      string `json:"vendor"`
	ProductType string `json:"product_type"`
	Tags        string `json:"tags"`
	Options     []struct {
		Name   string   `json:"name"`
		Values []string `json:"values"`
	} `json:"options"`
	Variants []struct {
		Price             any `json:"price"`
		InventoryQuantity any `json:"inventory_quantity"`
	} `json:"variants"`
	Image *struct {
		Src string `json:"src"`
	} `json:"image"`
}

// Products implements Source. With a configured domain only that shop is
// served: shopID must be empty, the domain or its handle. Without one, shopID
// must be a bare store handle. Anything else fails with common.ErrUnknownShop
// before a request is made.
func (s *ShopifySource) Products(ctx context.Context, shopID string) ([]model.CatalogItem, error) {
	first, err := s.firstPageURL(shopID)
	if err != nil {
		return nil, err
	}
	origin, err := url.Parse(first)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCatalogUnavailable, err)
	}

	var raws []RawProduct
	for next := first; next != "" && len(raws) < MaxCatalogItems; {
		page, link, err := s.fetchPage(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrCatalogUnavailable, err)
		}
		for _, p := range page {
			raws = append(raws, p.toRaw())
		}
		if link != "" && !sameOrigin(origin, link) {
			return nil, fmt.Errorf("%w: pagination link leaves %s", common.ErrCatalogUnavailable, origin.Host)
		}
		next = link
	}

	s.logger.DebugContext(ctx, "fetched shopify catalog", "shop_id", shopID, "products", len(raws))
	return Normalize(raws, s.logger), nil
}

func (s *ShopifySource) firstPageURL(shopID string) (string, error) {
	host, err := s.shopHost(shopID)
	if err != nil {
		return "", err
	}
	base := s.baseURL
	if base == "" {
		base = "https://" + host
	}

	params := url.Values{}
	params.Set("limit", "250")
	params.Set("status", "active")
	return fmt.Sprintf("%s/admin/api/%s/products.json?%s", base, s.apiVersion, params.Encode()), nil
}

func (s *ShopifySource) fetchPage(ctx context.Context, pageURL string) ([]shopifyProduct, string, error) {
	var (
		products []shopifyProduct
		next     string
	)

	err := common.WithRetry(ctx, func() error {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return common.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("X-Shopify-Access-Token", s.token)
		req.Header.Set("Accept", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: shopify status %d", common.ErrRateLimit, resp.StatusCode)
		case resp.StatusCode >= 500:
			return &common.RetryableError{Err: fmt.Errorf("shopify status %d", resp.StatusCode), Retryable: true}
		default:
			return common.Permanent(fmt.Errorf("shopify status %d: %s", resp.StatusCode, string(body)))
		}

		var page struct {
			Products []shopifyProduct `json:"products"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return common.Permanent(fmt.Errorf("failed to decode products: %w", err))
		}

		products = page.Products
		next = parseNextLink(resp.Header.Get("Link"))
		return nil
	}, s.retry)

	return products, next, err
}

// shopHost resolves shopID to the store host the access token is sent to.
func (s *ShopifySource) shopHost(shopID string) (string, error) {
	id := strings.ToLower(strings.TrimSpace(shopID))

	if s.domain != "" {
		if id == "" || id == s.domain || id+shopifyDomainSuffix == s.domain {
			return s.domain, nil
		}
		return "", fmt.Errorf("%w: %q is not served by this catalog", common.ErrUnknownShop, shopID)
	}

	if id == "" {
		return "", fmt.Errorf("%w: shopify domain", common.ErrMissingConfig)
	}
	if !shopHandlePattern.MatchString(id) {
		return "", fmt.Errorf("%w: invalid shop handle %q", common.ErrUnknownShop, shopID)
	}
	return id + shopifyDomainSuffix, nil
}

// normalizeShopDomain lowercases the configured domain and expands a bare handle.
func normalizeShopDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain != "" && shopHandlePattern.MatchString(domain) {
		domain += shopifyDomainSuffix
	}
	return domain
}

func sameOrigin(origin *url.URL, link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Scheme == origin.Scheme && strings.EqualFold(u.Host, origin.Host)
}

// parseNextLink extracts the rel="next" target of a Link header.
func parseNextLink(header string) string {
	m := nextLinkPattern.FindStringSubmatch(header)
	if m == nil {
		return ""
	}
	return m[1]
}

// toRaw flattens variants: the first variant's price and the summed inventory.
// A variant with unreadable inventory leaves inventory unset so the product is skipped.
func (p shopifyProduct) toRaw() RawProduct {
	raw := RawProduct{
		ID:          p.ID,
		Title:       p.Title,
		BodyHTML:    p.BodyHTML,
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
		Tags:        p.Tags,
	}

	for _, opt := range p.Options {
		raw.Options = append(raw.Options, RawOption{Name: opt.Name, Values: opt.Values})
	}
	if p.Image != nil {
		raw.ImageURL = p.Image.Src
	}

	if len(p.Variants) > 0 {
		raw.Price = p.Variants[0].Price

		total := 0
		for _, v := range p.Variants {
			if v.InventoryQuantity == nil {
				return raw
			}
			n, err := cast.ToIntE(v.InventoryQuantity)
			if err != nil {
				return raw
			}
			total += n
		}
		raw.InventoryCount = total
	}

	return raw
}
