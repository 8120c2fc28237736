package summary

// BuildPrompt is exported for testing
var BuildPrompt = buildPrompt

// BuildResponseSchema is exported for testing
var BuildResponseSchema = buildResponseSchema

// ParseResponse is exported for testing
var ParseResponse = parseResponse
