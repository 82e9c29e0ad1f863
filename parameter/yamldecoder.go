package parameter

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/mitchellh/mapstructure"
)

// FromSpec builds a Value from a decoded yaml entry. A bare number becomes a
// Constant; a map is dispatched on its "type" field to the matching
// distribution constructor. The given source is attached to random variants
// so all values of a campaign share one draw sequence.
func FromSpec(entry interface{}, src rand.Source) (Value, error) {
	switch v := entry.(type) {
	case int:
		return NewConstant(float64(v))
	case float64:
		return NewConstant(v)
	case map[string]interface{}:
		return fromSpecMap(v, src)
	case map[interface{}]interface{}:
		// yaml.v2 produces interface{}-keyed maps
		m := make(map[string]interface{}, len(v))
		for key, value := range v {
			keyStr, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("parameter spec key is not a string: %v", key)
			}
			m[keyStr] = value
		}
		return fromSpecMap(m, src)
	case Value:
		return v, nil
	default:
		return nil, fmt.Errorf("parameter spec must be a number or a map, got %T", entry)
	}
}

func fromSpecMap(m map[string]interface{}, src rand.Source) (Value, error) {
	// some yaml parsers lower-case keys and some don't
	typeStr, ok := m["type"].(string)
	if !ok {
		typeStr, ok = m["Type"].(string)
		if !ok {
			return nil, errors.New("parameter spec type field is missing or not a string")
		}
	}

	switch typeStr {
	case "constant":
		var params struct {
			Value float64 `mapstructure:"value"`
		}
		if err := decodeParams(&params, m); err != nil {
			return nil, err
		}
		return NewConstant(params.Value)
	case "uniform":
		var params UniformParams
		if err := decodeParams(&params, m); err != nil {
			return nil, err
		}
		params.Src = src
		return NewUniform(params)
	case "beta":
		var params BetaParams
		if err := decodeParams(&params, m); err != nil {
			return nil, err
		}
		params.Src = src
		return NewBeta(params)
	case "normal":
		var params NormalParams
		if err := decodeParams(&params, m); err != nil {
			return nil, err
		}
		params.Src = src
		return NewNormal(params)
	case "clipped_normal":
		var params ClippedNormalParams
		if err := decodeParams(&params, m); err != nil {
			return nil, err
		}
		params.Src = src
		return NewClippedNormal(params)
	default:
		return nil, fmt.Errorf("unknown parameter type: %s", typeStr)
	}
}

// decodeParams unmarshals a spec map into a params struct with mapstructure,
// parsing mode names through their text unmarshaller.
func decodeParams[T any](params *T, m map[string]interface{}) error {
	decoderConfig := &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(), // parses Mode names
		),
		Result: params,
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return err
	}
	if err := decoder.Decode(m); err != nil {
		return fmt.Errorf("parameter spec: %w", err)
	}
	return nil
}
