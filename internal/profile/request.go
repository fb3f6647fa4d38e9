package profile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jonathan/career-compass/internal/schemas"
	"github.com/jonathan/career-compass/internal/types"
)

// DecodeRequest validates raw request JSON against the request schema and decodes it. Numbers
// are kept as json.Number so integer answers survive unchanged.
func DecodeRequest(data []byte) (types.AnalysisRequest, error) {
	if err := schemas.Validate(schemas.Request, data); err != nil {
		return types.AnalysisRequest{}, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var req types.AnalysisRequest
	if err := dec.Decode(&req); err != nil {
		return types.AnalysisRequest{}, fmt.Errorf("failed to parse analysis request: %w", err)
	}
	return req, nil
}
