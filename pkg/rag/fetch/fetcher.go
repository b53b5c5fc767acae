package fetch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Timeout is the fixed per-fetch deadline. It is deliberately a constant
// rather than derived from the target or system load: the pipeline's total
// latency bound matters more than per-source success rate.
const Timeout = 1500 * time.Millisecond

// ErrTimeout reports that the deadline fired before the fetch settled.
var ErrTimeout = errors.New("fetch timed out")

// Fetcher retrieves page markup with a hard deadline and a short-TTL cache
// so repeated queries hitting the same sources skip the network.
type Fetcher struct {
	client *http.Client
	pages  *gocache.Cache
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		// No client timeout here; the race below owns the deadline
		client: &http.Client{},
		pages:  gocache.New(5*time.Minute, 10*time.Minute),
	}
}

type outcome struct {
	body string
	err  error
}

// Fetch races the HTTP retrieval against the fixed deadline; whichever
// settles first wins. A fired deadline abandons interest in the result but
// does not cancel the underlying request. No retry.
func (f *Fetcher) Fetch(link string) (string, error) {
	if body, found := f.pages.Get(link); found {
		return body.(string), nil
	}

	// Buffered so the straggling goroutine can complete after abandonment
	ch := make(chan outcome, 1)
	go func() {
		body, err := f.get(link)
		ch <- outcome{body: body, err: err}
	}()

	timer := time.NewTimer(Timeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		if out.err != nil {
			return "", out.err
		}
		f.pages.SetDefault(link, out.body)
		return out.body, nil
	case <-timer.C:
		return "", ErrTimeout
	}
}

func (f *Fetcher) get(link string) (string, error) {
	resp, err := f.client.Get(link)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", link, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", link, resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", link, err)
	}

	return string(bodyBytes), nil
}
