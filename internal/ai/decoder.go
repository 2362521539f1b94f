package ai

import (
	"encoding/json"
	"strings"

	"github.com/ibanezbetes/trinity-sub010/internal/common/logger"
	"github.com/ibanezbetes/trinity-sub010/internal/common/metrics"
	"github.com/ibanezbetes/trinity-sub010/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// GenericApology is the reply synthesized when the model output cannot be
// decoded at all.
const GenericApology = "Lo siento, ahora mismo no te he entendido bien. ¿Puedes contarme qué tipo de película te apetece ver?"

// intentSchemaJSON is the output contract the model is instructed to follow.
const intentSchemaJSON = `{
	"type": "object",
	"properties": {
		"intent": {"type": "string", "enum": ["cinema", "other"]},
		"titles": {"type": "array", "items": {"type": "string"}},
		"reply": {"type": "string"}
	},
	"required": ["intent"]
}`

var intentSchema = mustCompileSchema(intentSchemaJSON)

func mustCompileSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic("ai: invalid intent schema: " + err.Error())
	}
	return schema
}

// Decoder turns raw model text into a ClassifiedIntent. It never fails:
// decoding proceeds in three decreasing-confidence tiers and the last tier
// always produces a usable result.
type Decoder struct {
	logger logger.Logger
}

func NewDecoder(log logger.Logger) *Decoder {
	return &Decoder{
		logger: log.With(map[string]interface{}{
			"component": "response-decoder",
		}),
	}
}

// Decode parses the raw model output.
//
// Tier 1 treats the full text as the JSON object the model was instructed to
// emit. Tier 2 scans for an object-shaped substring (code fences, trailing
// prose, comment artifacts) and reparses. Tier 3 synthesizes an off-topic
// reply with a generic apology. Tier usage is reported as a counter so the
// rate of model contract violations stays visible.
func (d *Decoder) Decode(raw string) models.ClassifiedIntent {
	trimmed := strings.TrimSpace(raw)

	if intent, ok := d.tryParse(trimmed); ok {
		metrics.DecodeTier.WithLabelValues("direct").Inc()
		return intent
	}

	if extracted := ExtractJSON(trimmed); extracted != "" {
		if intent, ok := d.tryParse(extracted); ok {
			metrics.DecodeTier.WithLabelValues("extracted").Inc()
			return intent
		}
	}

	metrics.DecodeTier.WithLabelValues("fallback").Inc()
	d.logger.Warn("model output not decodable, synthesizing reply", map[string]interface{}{
		"rawLength": len(raw),
	})
	return models.ClassifiedIntent{
		Intent: models.IntentOther,
		Reply:  GenericApology,
	}
}

// tryParse attempts a strict parse plus schema validation of one candidate
// JSON document.
func (d *Decoder) tryParse(candidate string) (models.ClassifiedIntent, bool) {
	if candidate == "" || !strings.HasPrefix(candidate, "{") {
		return models.ClassifiedIntent{}, false
	}

	result, err := intentSchema.Validate(gojsonschema.NewStringLoader(candidate))
	if err != nil || !result.Valid() {
		return models.ClassifiedIntent{}, false
	}

	var intent models.ClassifiedIntent
	if err := json.Unmarshal([]byte(candidate), &intent); err != nil {
		return models.ClassifiedIntent{}, false
	}

	switch intent.Intent {
	case models.IntentCinema:
		intent.Reply = ""
		return intent, true
	case models.IntentOther:
		intent.Titles = nil
		if intent.Reply == "" {
			intent.Reply = GenericApology
		}
		return intent, true
	default:
		return models.ClassifiedIntent{}, false
	}
}
