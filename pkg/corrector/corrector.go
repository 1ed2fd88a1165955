package corrector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corrigo/corrigo/pkg/id"
	"github.com/go-resty/resty/v2"
	"github.com/google/wire"
)

// ErrUnavailable is returned when the correction engine cannot be
// reached or answers with a non-2xx status.
var ErrUnavailable = errors.New("correction engine unavailable")

var ProviderSet = wire.NewSet(NewRestyCorrector, wire.Bind(new(ICorrector), new(*RestyCorrector)))

// ICorrector produces an engine-corrected version of a text.
type ICorrector interface {
	Correct(ctx context.Context, text string) (string, error)
}

// Config holds the connection settings of the external correction engine.
type Config struct {
	Endpoint   string        `mapstructure:"endpoint"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryCount int           `mapstructure:"retryCount"`
}

func (c *Config) SetDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.RetryCount < 0 {
		c.RetryCount = 0
	}
}

type correctReq struct {
	Text string `json:"text"`
}

type correctResp struct {
	CorrectedText string `json:"correctedText"`
}

// RestyCorrector talks to the correction engine over HTTP.
type RestyCorrector struct {
	client *resty.Client
	conf   *Config
}

func NewRestyCorrector(conf *Config) *RestyCorrector {
	conf.SetDefaults()
	client := resty.New().
		SetBaseURL(conf.Endpoint).
		SetTimeout(conf.Timeout).
		SetRetryCount(conf.RetryCount)

	return &RestyCorrector{client: client, conf: conf}
}

func (r *RestyCorrector) Correct(ctx context.Context, text string) (string, error) {
	var result correctResp
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", id.ShortId()).
		SetBody(correctReq{Text: text}).
		SetResult(&result).
		Post("/v1/correct")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}

	return result.CorrectedText, nil
}
