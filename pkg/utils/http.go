package utils

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// httpClient limita o tempo total de download do dataset remoto
var httpClient = &http.Client{Timeout: 2 * time.Minute}

func MakeRequest(url string) ([]byte, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request to %s failed with status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return data, nil
}
