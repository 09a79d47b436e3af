// internal/hcm/soap.go
package hcm

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"hrbridge/pkg/metrics"
)

type soapFault struct {
	FaultCode   string `xml:"faultcode"`
	FaultString string `xml:"faultstring"`
}

// BuildRequestElement renders a flat request element for a SOAP action from
// tool arguments, e.g. <Get_Payslips_Request><Employee_ID>42</Employee_ID></Get_Payslips_Request>.
func BuildRequestElement(action string, args map[string]any, order []string) []byte {
	var buf bytes.Buffer
	name := action + "_Request"
	buf.WriteString("<" + name + ">")
	for _, k := range order {
		v, ok := args[k]
		if !ok || v == nil {
			continue
		}
		buf.WriteString("<" + k + ">")
		_ = xml.EscapeText(&buf, []byte(fmt.Sprint(v)))
		buf.WriteString("</" + k + ">")
	}
	buf.WriteString("</" + name + ">")
	return buf.Bytes()
}

// envelope wraps a request element in the SOAP 1.1 envelope the legacy HR
// services expect. Built textually: encoding/xml cannot marshal prefixed
// element names. The platform accepts OAuth bearer tokens on SOAP calls via
// the Authorization header, so no WS-Security block is needed.
func envelope(requestElement []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"><soapenv:Header/><soapenv:Body>`)
	buf.Write(requestElement)
	buf.WriteString(`</soapenv:Body></soapenv:Envelope>`)
	return buf.Bytes()
}

// DoSOAP posts one SOAP request to the named service and returns the raw
// response body. Faults surface as errors carrying the faultstring.
func (c *Client) DoSOAP(ctx context.Context, service, action string, requestElement []byte) (string, error) {
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("authorization failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.soapBase+"/"+service, bytes.NewReader(envelope(requestElement)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", action)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.VendorRequestSeconds.WithLabelValues("SOAP", "transport_error").Observe(time.Since(start).Seconds())
		return "", fmt.Errorf("hr soap service unreachable: %w", err)
	}
	defer resp.Body.Close()
	respBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	metrics.VendorRequestSeconds.WithLabelValues("SOAP", strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if fault := extractFault(respBytes); fault != "" {
		return "", fmt.Errorf("soap fault from %s.%s: %s", service, action, fault)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{Status: resp.StatusCode, Body: string(respBytes)}
	}
	return string(respBytes), nil
}

func extractFault(body []byte) string {
	if !bytes.Contains(body, []byte("faultstring")) {
		return ""
	}
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "Fault" {
			var f soapFault
			if err := dec.DecodeElement(&f, &se); err == nil && f.FaultString != "" {
				return f.FaultString
			}
		}
	}
}
