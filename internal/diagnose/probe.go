// Package diagnose runs best-effort network reachability checks against a
// target after a connection failure. The probe exists purely for operator
// logging: every step is independently best-effort, the probe never fails,
// and it never changes the outcome of the connection attempt it follows.
package diagnose

import (
	"context"
	"log"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/miekg/dns"
	probing "github.com/prometheus-community/pro-bing"

	"github.com/termgate/termgate/internal/logutil"
)

const (
	pingTimeout = 3 * time.Second
	dialTimeout = 5 * time.Second
	dnsTimeout  = 3 * time.Second

	resolvConf = "/etc/resolv.conf"
)

// Report summarizes the probe steps. Zero values mean the step failed or
// was skipped; the details are in the log.
type Report struct {
	LocalHostname string
	LocalAddrs    []string
	Pinged        bool
	Reachable     bool
	Addrs         []string
	ReverseNames  []string
	PortOpen      bool
}

// Run executes the probe steps in order: local host identity, ICMP
// reachability, forward and reverse name resolution, and a raw TCP connect
// to the target port. A failure in one step does not abort later steps, and
// the probe as a whole never panics.
func Run(ctx context.Context, host string, port int) (report Report) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[diagnose] probe panicked: %v", r)
		}
	}()

	h := logutil.SanitizeForLog(host)
	log.Printf("[diagnose] probing %s:%d after connection failure", h, port)

	report.LocalHostname, report.LocalAddrs = localIdentity(ctx)
	log.Printf("[diagnose] local host: name=%s addrs=%v", report.LocalHostname, report.LocalAddrs)

	report.Pinged, report.Reachable = ping(ctx, host)
	if report.Pinged {
		log.Printf("[diagnose] %s reachable via ICMP: %v", h, report.Reachable)
	}

	report.Addrs = resolve(ctx, host)
	if len(report.Addrs) > 0 {
		log.Printf("[diagnose] %s resolves to %v", h, report.Addrs)
		report.ReverseNames = reverseLookup(report.Addrs[0])
		if len(report.ReverseNames) > 0 {
			log.Printf("[diagnose] %s reverse names: %v", report.Addrs[0], report.ReverseNames)
		}
	}

	report.PortOpen = tcpConnect(ctx, host, port)
	log.Printf("[diagnose] tcp connect to %s:%d: open=%v", h, port, report.PortOpen)

	return report
}

func localIdentity(ctx context.Context) (string, []string) {
	name, err := os.Hostname()
	if err != nil {
		log.Printf("[diagnose] cannot determine local hostname: %v", err)
		return "", nil
	}

	lctx, cancel := context.WithTimeout(ctx, dnsTimeout)
	defer cancel()
	addrs, err := net.DefaultResolver.LookupHost(lctx, name)
	if err != nil {
		// Common on hosts whose name is not in DNS; not an error worth more
		// than a log line.
		log.Printf("[diagnose] cannot resolve local hostname %s: %v", name, err)
		return name, nil
	}
	return name, addrs
}

func ping(ctx context.Context, host string) (pinged, reachable bool) {
	pinger, err := probing.NewPinger(host)
	if err != nil {
		log.Printf("[diagnose] ping setup failed: %v", err)
		return false, false
	}
	pinger.Count = 3
	pinger.Timeout = pingTimeout
	pinger.SetPrivileged(false)

	if err := pinger.RunWithContext(ctx); err != nil {
		log.Printf("[diagnose] ping failed: %v", err)
		return false, false
	}
	stats := pinger.Statistics()
	return true, stats.PacketsRecv > 0
}

// resolve does a forward lookup through the system resolver so it observes
// exactly what the failed dial observed, /etc/hosts included.
func resolve(ctx context.Context, host string) []string {
	lctx, cancel := context.WithTimeout(ctx, dnsTimeout)
	defer cancel()

	addrs, err := net.DefaultResolver.LookupHost(lctx, host)
	if err != nil {
		log.Printf("[diagnose] forward lookup of %s failed: %v", logutil.SanitizeForLog(host), err)
		return nil
	}
	return addrs
}

// reverseLookup queries the configured nameserver directly for the PTR
// record of the given address.
func reverseLookup(addr string) []string {
	arpa, err := dns.ReverseAddr(addr)
	if err != nil {
		log.Printf("[diagnose] reverse lookup of %s failed: %v", addr, err)
		return nil
	}

	cfg, err := dns.ClientConfigFromFile(resolvConf)
	if err != nil || len(cfg.Servers) == 0 {
		log.Printf("[diagnose] no usable resolver config: %v", err)
		return nil
	}

	m := new(dns.Msg)
	m.SetQuestion(arpa, dns.TypePTR)

	client := &dns.Client{Timeout: dnsTimeout}
	in, _, err := client.Exchange(m, net.JoinHostPort(cfg.Servers[0], cfg.Port))
	if err != nil {
		log.Printf("[diagnose] PTR query for %s failed: %v", addr, err)
		return nil
	}

	var names []string
	for _, rr := range in.Answer {
		if ptr, ok := rr.(*dns.PTR); ok {
			names = append(names, ptr.Ptr)
		}
	}
	return names
}

func tcpConnect(ctx context.Context, host string, port int) bool {
	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		log.Printf("[diagnose] tcp connect failed: %v", err)
		return false
	}
	conn.Close()
	return true
}
