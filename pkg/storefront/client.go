package storefront

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storewatch/pkg/logger"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL serves US requests; other countries get a path prefix
	DefaultBaseURL = "https://www.apple.com/"

	// AppointmentBaseURL hosts the per-day/per-hour slot availability feed
	AppointmentBaseURL = "https://retail-pz.cdn-apple.com/product-zone-prod/availability"

	defaultTimeout = 30 * time.Second
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// Client talks to the retailer's public product and availability endpoints
type Client struct {
	httpClient     *http.Client
	baseURL        string
	appointmentURL string
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the product endpoint base (used by tests)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = ensureTrailingSlash(baseURL)
		}
	}
}

// WithAppointmentURL overrides the appointment feed base (used by tests)
func WithAppointmentURL(appointmentURL string) Option {
	return func(c *Client) {
		if appointmentURL != "" {
			c.appointmentURL = strings.TrimSuffix(appointmentURL, "/")
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a storefront client for the given country code. The
// retailer only prefixes the country for non-US storefronts.
func NewClient(countryCode string, opts ...Option) *Client {
	baseURL := DefaultBaseURL
	if !strings.EqualFold(countryCode, "us") && countryCode != "" {
		baseURL = fmt.Sprintf("%s%s/", DefaultBaseURL, strings.ToLower(countryCode))
	}

	c := &Client{
		httpClient:     &http.Client{Timeout: defaultTimeout},
		baseURL:        baseURL,
		appointmentURL: AppointmentBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProductURL builds the canonical product page link for a SKU
func (c *Client) ProductURL(sku string) string {
	return fmt.Sprintf("%sshop/product/%s", c.baseURL, sku)
}

// FetchCatalog retrieves the family-level product catalog. A non-success
// status or empty body is ErrTransport; a body without the expected nested
// structure is ErrUnexpectedShape.
func (c *Client) FetchCatalog(ctx context.Context, family string) ([]CatalogProduct, error) {
	endpoint := fmt.Sprintf("%sshop/product-locator-meta?family=%s", c.baseURL, url.QueryEscape(family))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty catalog body", ErrTransport)
	}

	var parsed catalogResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	if parsed.Body == nil ||
		parsed.Body.ProductLocatorOverlayData == nil ||
		parsed.Body.ProductLocatorOverlayData.ProductLocatorMeta == nil {
		return nil, fmt.Errorf("%w: product locator meta missing", ErrUnexpectedShape)
	}

	products := parsed.Body.ProductLocatorOverlayData.ProductLocatorMeta.Products
	logger.Debug("Fetched product catalog",
		zap.String("family", family),
		zap.Int("products", len(products)))
	return products, nil
}

// FetchAvailability retrieves the per-store pickup state for one SKU around
// the given location. A body that does not parse is ErrMalformedBody; the
// caller treats that as a per-device failure, not a fatal one.
func (c *Client) FetchAvailability(ctx context.Context, sku, zip string) ([]StoreAvailability, error) {
	params := url.Values{}
	params.Set("pl", "true")
	params.Set("parts.0", sku)
	params.Set("location", zip)
	endpoint := fmt.Sprintf("%sshop/retail/pickup-message?%s", c.baseURL, params.Encode())

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var parsed availabilityResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	if parsed.Body == nil {
		return nil, fmt.Errorf("%w: availability body missing", ErrUnexpectedShape)
	}

	logger.Debug("Fetched availability",
		zap.String("sku", sku),
		zap.Int("stores", len(parsed.Body.Stores)))
	return parsed.Body.Stores, nil
}

// FetchAppointments retrieves appointment slot availability for the given
// date (2006-01-02) and zero-padded UTC hour.
func (c *Client) FetchAppointments(ctx context.Context, date, hour string) ([]AppointmentSlot, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/availability.json", c.appointmentURL, date, hour)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var slots []AppointmentSlot
	if err := json.Unmarshal(body, &slots); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return slots, nil
}

// get performs a GET request and returns the (possibly gzip-compressed) body
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode)
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		defer gzReader.Close()
		reader = gzReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return body, nil
}

func ensureTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}
