// Package inferencesvc calls the Hugging Face hosted inference endpoint for
// chatbot text generation. The call is best-effort: callers are expected to
// degrade gracefully on any error.
package inferencesvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/pkg/errors"

	"github.com/mbizohigh/chikoro/core"
	"github.com/mbizohigh/chikoro/core/chat"
)

const baseURL = "https://api-inference.huggingface.co/models/"

// fallbackText is used when the endpoint answers with a shape we cannot read.
const fallbackText = "I'm sorry, I couldn't understand that. How can I help you with school-related information?"

type huggingFaceService struct {
	model  string
	apiKey string
	client *http.Client
}

var _ chat.Generator = (*huggingFaceService)(nil)

func NewHuggingFaceService(conf core.ChatConfig) *huggingFaceService {
	return &huggingFaceService{
		model:  conf.Model,
		apiKey: conf.ApiKey,
		client: &http.Client{Timeout: conf.Timeout},
	}
}

type (
	generateRequest struct {
		Inputs     string             `json:"inputs"`
		Parameters generateParameters `json:"parameters"`
	}

	generateParameters struct {
		MaxNewTokens int     `json:"max_new_tokens"`
		Temperature  float64 `json:"temperature"`
		DoSample     bool    `json:"do_sample"`
	}
)

func (svc *huggingFaceService) Generate(ctx context.Context, message string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Inputs: message,
		Parameters: generateParameters{
			MaxNewTokens: 128,
			Temperature:  0.7,
			DoSample:     true,
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding inference request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+svc.model, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "building inference request")
	}
	req.Header.Set("Authorization", "Bearer "+svc.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := svc.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling inference endpoint")
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", errors.New(fmt.Sprintf("inference endpoint returned %d", res.StatusCode))
	}

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading inference response")
	}
	return extractGeneratedText(body), nil
}

// extractGeneratedText handles the common response shapes of hosted models:
// a bare string, {"generated_text": ...} or [{"generated_text": ...}].
func extractGeneratedText(body []byte) string {
	var asString string
	if err := json.Unmarshal(body, &asString); err == nil && asString != "" {
		return asString
	}

	var asObject struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &asObject); err == nil && asObject.GeneratedText != "" {
		return asObject.GeneratedText
	}

	var asList []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &asList); err == nil && len(asList) > 0 && asList[0].GeneratedText != "" {
		return asList[0].GeneratedText
	}

	return fallbackText
}
