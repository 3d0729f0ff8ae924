// Package merger assembles the SubQuery outcomes collected by the executor
// back into a single GraphQL response envelope, in RecompositionPlan order,
// exactly as spec.md §4.6 describes. JSON encoding goes through
// json-iterator/go, matching the printer and executor.
package merger

import (
	"bytes"
	"encoding/json"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/shyptr/splitcache/executor"
	"github.com/shyptr/splitcache/gqlerr"
	"github.com/shyptr/splitcache/partition"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Response is the final envelope written to the client.
type Response struct {
	Data       json.RawMessage        `json:"data"`
	Errors     []*gqlerr.GraphQLError `json:"errors,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Merge builds the Response for plan given the aligned outcomes (one per
// PlanEntry, same order), and returns the HTTP status code to send with it.
func Merge(plan partition.RecompositionPlan, outcomes []executor.Outcome) (*Response, int) {
	byKey := make(map[string]executor.Outcome, len(outcomes))
	for _, o := range outcomes {
		byKey[o.ResponseKey] = o
	}

	var data orderedObject
	var errs []*gqlerr.GraphQLError
	extensions := make(map[string]interface{})
	successCount := 0

	for _, entry := range plan {
		outcome, ok := byKey[entry.ResponseKey]
		if !ok {
			errs = append(errs, gqlerr.New(gqlerr.Network, "no result for %s", entry.ResponseKey).WithPath(entry.ResponseKey))
			data = append(data, keyValue{entry.ResponseKey, nullJSON})
			continue
		}
		if outcome.FetchErr != nil {
			errs = append(errs, outcome.FetchErr.WithPath(entry.ResponseKey))
			data = append(data, keyValue{entry.ResponseKey, nullJSON})
			continue
		}

		successCount++
		value := extractFieldValue(outcome.SubResponse.Data, entry.ResponseKey)
		data = append(data, keyValue{entry.ResponseKey, value})
		errs = append(errs, outcome.SubResponse.Errors...)
		for k, v := range outcome.SubResponse.Extensions {
			extensions[k] = v
		}
	}

	resp := &Response{Data: data.marshal()}
	if len(errs) > 0 {
		resp.Errors = errs
	}
	if len(extensions) > 0 {
		resp.Extensions = extensions
	}

	status := http.StatusBadGateway
	if successCount > 0 {
		status = http.StatusOK
	}
	return resp, status
}

var nullJSON = json.RawMessage("null")

// extractFieldValue pulls sub.data[key] back out of a SubResponse's data
// object, which a conforming origin populates with exactly that one key.
func extractFieldValue(subData json.RawMessage, key string) json.RawMessage {
	if len(subData) == 0 {
		return nullJSON
	}
	var fields map[string]json.RawMessage
	if err := jsonAPI.Unmarshal(subData, &fields); err != nil {
		return nullJSON
	}
	if v, ok := fields[key]; ok {
		return v
	}
	return nullJSON
}

type keyValue struct {
	key   string
	value json.RawMessage
}

// orderedObject preserves PlanEntry order when encoded, since Go's
// map[string]json.RawMessage gives no ordering guarantee and the merger's
// key order must equal the original query's top-level selection order
// (spec §5 ordering guarantee, invariant 2).
type orderedObject []keyValue

func (o orderedObject) marshal() json.RawMessage {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, kv := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		keyJSON, _ := jsonAPI.Marshal(kv.key)
		b.Write(keyJSON)
		b.WriteByte(':')
		if len(kv.value) == 0 {
			b.WriteString("null")
		} else {
			b.Write(kv.value)
		}
	}
	b.WriteByte('}')
	return json.RawMessage(b.Bytes())
}
