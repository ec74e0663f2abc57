package twitter

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// credentials holds the four OAuth 1.0a secrets for the bot account.
type credentials struct {
	apiKey       string
	apiSecret    string
	accessToken  string
	accessSecret string
}

func (c credentials) complete() bool {
	return c.apiKey != "" && c.apiSecret != "" && c.accessToken != "" && c.accessSecret != ""
}

// nonce returns a random hex string for the oauth_nonce parameter.
func nonce(bytes int) string {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to time.
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

// percentEncode applies RFC 3986 encoding, including the characters
// url.QueryEscape leaves alone but OAuth requires encoded.
func percentEncode(s string) string {
	encoded := url.QueryEscape(s)
	replacer := strings.NewReplacer(
		"+", "%20",
		"!", "%21",
		"*", "%2A",
		"'", "%27",
		"(", "%28",
		")", "%29",
	)
	return replacer.Replace(encoded)
}

// signRequest produces the OAuth Authorization header for one request.
// params must contain every query/body parameter of the request.
func (c credentials) signRequest(method, requestURL string, params map[string]string, oauthNonce string, timestamp int64) string {
	oauthParams := map[string]string{
		"oauth_consumer_key":     c.apiKey,
		"oauth_nonce":            oauthNonce,
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        fmt.Sprintf("%d", timestamp),
		"oauth_token":            c.accessToken,
		"oauth_version":          "1.0",
	}

	all := make(map[string]string, len(oauthParams)+len(params))
	for k, v := range oauthParams {
		all[k] = v
	}
	for k, v := range params {
		all[k] = v
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, percentEncode(k)+"="+percentEncode(all[k]))
	}
	paramString := strings.Join(pairs, "&")

	baseString := strings.Join([]string{
		strings.ToUpper(method),
		percentEncode(requestURL),
		percentEncode(paramString),
	}, "&")

	signingKey := percentEncode(c.apiSecret) + "&" + percentEncode(c.accessSecret)
	mac := hmac.New(sha1.New, []byte(signingKey))
	mac.Write([]byte(baseString))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	headerKeys := make([]string, 0, len(oauthParams))
	for k := range oauthParams {
		headerKeys = append(headerKeys, k)
	}
	sort.Strings(headerKeys)

	headerPairs := make([]string, 0, len(headerKeys)+1)
	for _, k := range headerKeys {
		headerPairs = append(headerPairs, fmt.Sprintf("%s=%q", percentEncode(k), percentEncode(oauthParams[k])))
	}
	headerPairs = append(headerPairs, fmt.Sprintf("oauth_signature=%q", percentEncode(signature)))

	return "OAuth " + strings.Join(headerPairs, ", ")
}

// authHeader signs with a fresh nonce and the current time.
func (c credentials) authHeader(method, requestURL string, params map[string]string) string {
	return c.signRequest(method, requestURL, params, nonce(16), time.Now().Unix())
}
