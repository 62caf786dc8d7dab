package fetcher

import (
	"context"
	"io"
	"net"
	"net/url"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FTPOptions configures the FTP fetcher.
type FTPOptions struct {
	Timeout time.Duration
}

// FTPFetcher implements Fetcher for ftp:// source URLs. County GIS portals
// still publish address extracts on anonymous FTP, so the extract stage
// falls through to this fetcher when the configured source is not HTTP.
// Every download is a fresh anonymous session; the connection lives only
// as long as the returned reader.
type FTPFetcher struct {
	opts FTPOptions
}

// NewFTPFetcher creates a new FTPFetcher with the given options.
func NewFTPFetcher(opts FTPOptions) *FTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &FTPFetcher{opts: opts}
}

// ftpTarget is a resolved FTP source: a dialable host:port and the remote
// file path to retrieve.
type ftpTarget struct {
	addr string
	path string
}

// resolveFTPTarget validates an ftp:// URL and fills in the default control
// port when the URL names none.
func resolveFTPTarget(rawURL string) (ftpTarget, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ftpTarget{}, eris.Wrap(err, "parse ftp url")
	}
	if u.Scheme != "ftp" {
		return ftpTarget{}, eris.Errorf("expected ftp scheme, got %q", u.Scheme)
	}
	if u.Path == "" {
		return ftpTarget{}, eris.Errorf("ftp url %q names no file", rawURL)
	}

	addr := u.Host
	if _, _, splitErr := net.SplitHostPort(addr); splitErr != nil {
		addr = net.JoinHostPort(addr, "21")
	}

	return ftpTarget{addr: addr, path: u.Path}, nil
}

// connect dials the server and logs in anonymously. The caller owns the
// returned connection and must Quit it.
func (f *FTPFetcher) connect(ctx context.Context, addr string) (*ftp.ServerConn, error) {
	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(f.opts.Timeout))
	if err != nil {
		return nil, eris.Wrap(err, "ftp dial")
	}
	if err := conn.Login("anonymous", "anonymous@"); err != nil {
		_ = conn.Quit()
		return nil, eris.Wrap(err, "ftp login")
	}
	return conn, nil
}

// ftpSession couples an in-flight RETR response with the connection it rides
// on. Closing the session drains both: the data connection first, then the
// control connection.
type ftpSession struct {
	conn *ftp.ServerConn
	resp *ftp.Response
}

func (s *ftpSession) Read(p []byte) (int, error) {
	return s.resp.Read(p)
}

// Close closes the response and quits the control connection. Both always
// run; the first failure wins.
func (s *ftpSession) Close() error {
	err := s.resp.Close()
	if quitErr := s.conn.Quit(); err == nil {
		err = quitErr
	}
	if err != nil {
		return eris.Wrap(err, "close ftp session")
	}
	return nil
}

// Download retrieves the file behind the FTP URL. The returned ReadCloser
// holds the server connection open until closed.
func (f *FTPFetcher) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	tgt, err := resolveFTPTarget(rawURL)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("ftp: retrieving", zap.String("addr", tgt.addr), zap.String("path", tgt.path))

	conn, err := f.connect(ctx, tgt.addr)
	if err != nil {
		return nil, err
	}

	resp, err := conn.Retr(tgt.path)
	if err != nil {
		_ = conn.Quit()
		return nil, eris.Wrap(err, "ftp retrieve")
	}

	return &ftpSession{conn: conn, resp: resp}, nil
}

// DownloadToFile retrieves the FTP URL into path. The file appears only
// after a complete transfer.
func (f *FTPFetcher) DownloadToFile(ctx context.Context, rawURL string, path string) (int64, error) {
	rc, err := f.Download(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer rc.Close() //nolint:errcheck

	return writeToFileAtomic(rc, path)
}
