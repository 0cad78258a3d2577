package imagestore

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Cloudinary talks to the Cloudinary admin API. Only the destroy call is
// needed here; uploads happen through a separate signed-upload flow owned by
// the frontend.
type Cloudinary struct {
	CloudName string
	APIKey    string
	APISecret string
	HTTP      *http.Client
}

func NewCloudinary(cloudName, apiKey, apiSecret string) *Cloudinary {
	return &Cloudinary{
		CloudName: cloudName,
		APIKey:    apiKey,
		APISecret: apiSecret,
		HTTP:      &http.Client{Timeout: 10 * time.Second},
	}
}

type destroyResponse struct {
	Result string `json:"result"`
}

// Delete issues a signed destroy call for publicID.
func (c *Cloudinary) Delete(ctx context.Context, publicID string) (Result, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("timestamp", timestamp)
	form.Set("api_key", c.APIKey)
	form.Set("signature", c.sign(publicID, timestamp))

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/destroy", c.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return ResultError, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return ResultError, err
	}
	defer resp.Body.Close()

	var body destroyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ResultError, err
	}

	switch body.Result {
	case "ok":
		return ResultOK, nil
	case "not found":
		return ResultNotFound, nil
	default:
		return ResultError, fmt.Errorf("cloudinary destroy %q: %s", publicID, body.Result)
	}
}

// sign produces the request signature over the sorted parameter string, per
// the Cloudinary API authentication scheme.
func (c *Cloudinary) sign(publicID, timestamp string) string {
	payload := "public_id=" + publicID + "&timestamp=" + timestamp + c.APISecret
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}
