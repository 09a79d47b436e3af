package hcm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type staticTokens struct {
	token string
	err   error
	calls int
}

func (s *staticTokens) Token(_ context.Context) (string, error) {
	s.calls++
	return s.token, s.err
}

func TestDoSendsBearerAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("authorization = %q", got)
		}
		if r.URL.Path != "/workers/W-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if q := r.URL.Query().Get("limit"); q != "10" {
			t.Errorf("limit = %q", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"W-1","descriptor":"Ada"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", &staticTokens{token: "tok-1"}, nil)
	doc, err := c.Do(context.Background(), http.MethodGet, "/workers/W-1", map[string][]string{"limit": {"10"}}, nil)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	m := doc.(map[string]any)
	if m["id"] != "W-1" {
		t.Fatalf("doc = %v", m)
	}
}

func TestDoTokenFailurePreventsVendorCall(t *testing.T) {
	var hit bool
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { hit = true }))
	defer srv.Close()

	c := NewClient(srv.URL, "", &staticTokens{err: errors.New("no refresh token configured")}, nil)
	_, err := c.Do(context.Background(), http.MethodGet, "/workers", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "authorization failed") {
		t.Fatalf("err = %v", err)
	}
	if hit {
		t.Fatal("vendor endpoint was called despite token failure")
	}
}

func TestDoSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"worker not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", &staticTokens{token: "tok-1"}, nil)
	_, err := c.Do(context.Background(), http.MethodGet, "/workers/W-404", nil, nil)
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("got %v, want APIError", err)
	}
	if ae.Status != http.StatusNotFound || !strings.Contains(ae.Body, "worker not found") {
		t.Fatalf("APIError = %+v", ae)
	}
}

func TestDoSOAPEnvelopeAndFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("SOAPAction") != "Get_Payslips" {
			t.Errorf("SOAPAction = %q", r.Header.Get("SOAPAction"))
		}
		if !strings.HasSuffix(r.URL.Path, "/Payroll") {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"><soapenv:Body><Get_Payslips_Response/></soapenv:Body></soapenv:Envelope>`))
	}))
	defer srv.Close()

	c := NewClient("", srv.URL, &staticTokens{token: "tok-1"}, nil)
	elem := BuildRequestElement("Get_Payslips", map[string]any{"Employee_ID": "E-1"}, []string{"Employee_ID"})
	out, err := c.DoSOAP(context.Background(), "Payroll", "Get_Payslips", elem)
	if err != nil {
		t.Fatalf("DoSOAP: %v", err)
	}
	if !strings.Contains(out, "Get_Payslips_Response") {
		t.Fatalf("response = %q", out)
	}
}

func TestDoSOAPFaultBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"><soapenv:Body><soapenv:Fault><faultcode>soapenv:Client</faultcode><faultstring>invalid employee reference</faultstring></soapenv:Fault></soapenv:Body></soapenv:Envelope>`))
	}))
	defer srv.Close()

	c := NewClient("", srv.URL, &staticTokens{token: "tok-1"}, nil)
	_, err := c.DoSOAP(context.Background(), "Payroll", "Get_Payslips", []byte("<Get_Payslips_Request/>"))
	if err == nil || !strings.Contains(err.Error(), "invalid employee reference") {
		t.Fatalf("err = %v", err)
	}
}

func TestBuildRequestElementEscapesValues(t *testing.T) {
	elem := string(BuildRequestElement("Do_Thing", map[string]any{"Name": "a<b&c"}, []string{"Name"}))
	if !strings.Contains(elem, "a&lt;b&amp;c") {
		t.Fatalf("elem = %q", elem)
	}
	if !strings.HasPrefix(elem, "<Do_Thing_Request>") || !strings.HasSuffix(elem, "</Do_Thing_Request>") {
		t.Fatalf("elem = %q", elem)
	}
}
