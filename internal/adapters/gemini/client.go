/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package gemini

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"

    "github.com/rs/zerolog"
    "github.com/tiohsa/redmain-dashboard/internal/config"
)

type Client struct {
    key   string
    model string
    http  *http.Client
    log   zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
    model := cfg.GeminiModel
    if strings.TrimSpace(model) == "" { model = "gemini-1.5-flash" }
    return &Client{key: cfg.GeminiKey, model: model, http: &http.Client{Timeout: cfg.OpenAITimeout}, log: log}
}

func (c *Client) Analyze(ctx context.Context, prompt string) (string, error) {
    if strings.TrimSpace(c.key) == "" { return "", errors.New("gemini: missing key") }
    c.log.Info().Str("model", c.model).Msg("gemini analyze call")
    u := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
        url.PathEscape(c.model), url.QueryEscape(c.key))
    body := map[string]any{"contents": []map[string]any{{"parts": []map[string]string{{"text": prompt}}}}}
    b, _ := json.Marshal(body)
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
    if err != nil { return "", err }
    req.Header.Set("Content-Type", "application/json")
    resp, err := c.http.Do(req)
    if err != nil { return "", err }
    defer resp.Body.Close()
    if resp.StatusCode >= 300 {
        bb, _ := io.ReadAll(resp.Body)
        return "", fmt.Errorf("gemini status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(bb)))
    }
    var out struct {
        Candidates []struct {
            Content struct {
                Parts []struct {
                    Text string `json:"text"`
                } `json:"parts"`
            } `json:"content"`
        } `json:"candidates"`
    }
    if err := json.NewDecoder(resp.Body).Decode(&out); err != nil { return "", err }
    if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
        return "", errors.New("gemini: empty response")
    }
    return out.Candidates[0].Content.Parts[0].Text, nil
}
