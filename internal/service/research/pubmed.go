// Package research wraps the NCBI E-utilities API used by the research
// agent. Like every tool binding, failures degrade to descriptive strings
// because the output lands in a prompt.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agenticdoctor/backend/internal/config"
)

// Client queries PubMed via esearch + esummary.
type Client struct {
	httpClient *http.Client
	baseURL    string
	email      string
	maxResults int
}

// NewClient builds a PubMed client from configuration.
func NewClient(cfg config.ResearchConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		email:      cfg.Email,
		maxResults: cfg.MaxResults,
	}
}

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type articleSummary struct {
	Title   string `json:"title"`
	PubDate string `json:"pubdate"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
}

// Search finds recent studies on a topic, restricted to the current
// publication year, and formats them for prompt injection.
func (c *Client) Search(ctx context.Context, topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "No search topic provided"
	}

	year := time.Now().Year()
	term := fmt.Sprintf("%s AND %d[PDAT]", topic, year)

	ids, err := c.esearch(ctx, term)
	if err != nil {
		return fmt.Sprintf("Error searching PubMed: %v", err)
	}
	if len(ids) == 0 {
		return fmt.Sprintf("No recent studies found for '%s'", topic)
	}

	summaries, err := c.esummary(ctx, ids)
	if err != nil {
		return fmt.Sprintf("Error searching PubMed: %v", err)
	}

	blocks := make([]string, 0, len(ids))
	for i, id := range ids {
		summary, ok := summaries[id]
		if !ok {
			continue
		}

		title := summary.Title
		if title == "" {
			title = "No title"
		}

		names := make([]string, 0, 3)
		for _, author := range summary.Authors {
			if len(names) == 3 {
				break
			}
			names = append(names, author.Name)
		}
		authors := strings.Join(names, ", ")
		if authors == "" {
			authors = "Unknown authors"
		}

		pubDate := summary.PubDate
		if pubDate == "" {
			pubDate = "Unknown date"
		}

		blocks = append(blocks, fmt.Sprintf("%d. %s\n   Authors: %s\n   Date: %s\n   PMID: %s",
			i+1, title, authors, pubDate, id))
	}

	if len(blocks) == 0 {
		return fmt.Sprintf("No recent studies found for '%s'", topic)
	}
	return strings.Join(blocks, "\n\n")
}

func (c *Client) esearch(ctx context.Context, term string) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", term)
	params.Set("retmax", fmt.Sprintf("%d", c.maxResults))
	params.Set("retmode", "json")
	params.Set("email", c.email)

	var parsed esearchResponse
	if err := c.get(ctx, "/esearch.fcgi", params, &parsed); err != nil {
		return nil, err
	}
	return parsed.ESearchResult.IDList, nil
}

func (c *Client) esummary(ctx context.Context, ids []string) (map[string]articleSummary, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "json")
	params.Set("email", c.email)

	// The esummary result object keys article summaries by uid next to a
	// "uids" array, so it is decoded loosely first.
	var parsed struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := c.get(ctx, "/esummary.fcgi", params, &parsed); err != nil {
		return nil, err
	}

	summaries := make(map[string]articleSummary, len(ids))
	for _, id := range ids {
		raw, ok := parsed.Result[id]
		if !ok {
			continue
		}
		var summary articleSummary
		if err := json.Unmarshal(raw, &summary); err != nil {
			continue
		}
		summaries[id] = summary
	}
	return summaries, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
