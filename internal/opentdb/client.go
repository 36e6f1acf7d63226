package opentdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://opentdb.com"
	requestTimeout = 30 * time.Second

	// One initial attempt plus maxRetries on rate-limited responses.
	maxRetries        = 3
	initialRetryDelay = 6 * time.Second
)

// Body-level response codes returned by the trivia source.
const (
	codeSuccess         = 0
	codeAmountTooLarge  = 1
	codeInvalidParam    = 2
	codeInvalidToken    = 3
	codeSpentToken      = 4
	codeTooManyRequests = 5
)

// ErrTriviaSource is the single error kind raised for any failed fetch:
// transport failures, non-success responses, and exhausted rate-limit
// retries all look the same to callers.
var ErrTriviaSource = errors.New("trivia source request failed")

// Category is a trivia category annotated with its verified question count.
type Category struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	QuestionCount int    `json:"questions_count"`
}

// RawQuestion mirrors the trivia source question payload.
type RawQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Client talks to the trivia source for one seeding run. It holds the run's
// session token, first-call flag and adaptive delay as explicit state, so a
// fresh client must be created per run.
//
// The delay is slept before every call after the first to respect the
// source's global rate limit, and doubles each time the source reports too
// many requests.
type Client struct {
	httpClient *http.Client
	baseURL    string

	sessionToken  string
	madeFirstCall bool
	delay         time.Duration

	sleep func(time.Duration)
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		delay:      initialRetryDelay,
		sleep:      time.Sleep,
	}
}

// call fetches one endpoint, retrying up to maxRetries times on
// rate-limited responses. Any other failure is terminal.
func (c *Client) call(path string, params url.Values, out any) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if c.madeFirstCall {
			c.sleep(c.delay)
		} else {
			c.madeFirstCall = true
		}

		body, status, err := c.get(path, params)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTriviaSource, err)
		}

		if status == http.StatusTooManyRequests {
			c.delay *= 2
			continue
		}
		if status != http.StatusOK {
			return fmt.Errorf("%w: status %d", ErrTriviaSource, status)
		}

		// Not every endpoint carries a response_code, so probe for it
		// before decoding the full payload.
		var probe struct {
			ResponseCode *int `json:"response_code"`
		}
		if err := json.Unmarshal(body, &probe); err != nil {
			return fmt.Errorf("%w: decode: %v", ErrTriviaSource, err)
		}
		if probe.ResponseCode != nil {
			switch *probe.ResponseCode {
			case codeSuccess:
			case codeTooManyRequests:
				c.delay *= 2
				continue
			default:
				return fmt.Errorf("%w: response_code %d", ErrTriviaSource, *probe.ResponseCode)
			}
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%w: decode: %v", ErrTriviaSource, err)
		}
		return nil
	}

	return fmt.Errorf("%w: rate limit retries exhausted", ErrTriviaSource)
}

func (c *Client) get(path string, params url.Values) ([]byte, int, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

// FetchCategories joins the global question-count endpoint with the
// category list, annotating each category with its verified question count.
func (c *Client) FetchCategories() ([]Category, error) {
	var counts struct {
		Categories map[string]struct {
			TotalVerified int `json:"total_num_of_verified_questions"`
		} `json:"categories"`
	}
	if err := c.call("/api_count_global.php", nil, &counts); err != nil {
		return nil, err
	}

	var list struct {
		TriviaCategories []Category `json:"trivia_categories"`
	}
	if err := c.call("/api_category.php", nil, &list); err != nil {
		return nil, err
	}

	categories := list.TriviaCategories
	for i := range categories {
		count, ok := counts.Categories[strconv.Itoa(categories[i].ID)]
		if ok {
			categories[i].QuestionCount = count.TotalVerified
		}
	}
	return categories, nil
}

// AcquireSessionToken requests the session token that deduplicates
// questions served within one seeding run. Must be called once before bulk
// fetching.
func (c *Client) AcquireSessionToken() error {
	params := url.Values{}
	params.Set("command", "request")

	var payload struct {
		Token string `json:"token"`
	}
	if err := c.call("/api_token.php", params, &payload); err != nil {
		return err
	}

	c.sessionToken = payload.Token
	return nil
}

// FetchQuestions fetches up to amount raw questions for a category.
func (c *Client) FetchQuestions(categoryID, amount int) ([]RawQuestion, error) {
	params := url.Values{}
	params.Set("amount", strconv.Itoa(amount))
	params.Set("category", strconv.Itoa(categoryID))
	if c.sessionToken != "" {
		params.Set("token", c.sessionToken)
	}

	var payload struct {
		Results []RawQuestion `json:"results"`
	}
	if err := c.call("/api.php", params, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}
