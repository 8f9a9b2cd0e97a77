package mpesa

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ResultCode код результата STK push. Шлюз отдает его то строкой, то числом.
type ResultCode string

const (
	ResultSuccess ResultCode = "0"
	ResultPending ResultCode = "1032"
)

type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeSuccess
	OutcomePending
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomePending:
		return "pending"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome переводит сырой код в перечисление, дальше по коду строки "0"/"1032" не сравниваются
func (c ResultCode) Outcome() Outcome {
	switch c {
	case "":
		return OutcomeUnknown
	case ResultSuccess:
		return OutcomeSuccess
	case ResultPending:
		return OutcomePending
	default:
		return OutcomeFailed
	}
}

func (c *ResultCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ResultCode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*c = ResultCode(strconv.FormatInt(i, 10))
		return nil
	}
	*c = ResultCode(n.String())
	return nil
}
