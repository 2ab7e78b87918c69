package server

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"filmorate/internal/config"
	"filmorate/internal/logging"
)

// TLSConfig TLS配置
type TLSConfig struct {
	CertFile string // 证书文件路径
	KeyFile  string // 私钥文件路径
	Enabled  bool   // 是否启用TLS
}

// NewTLSConfig 从应用配置创建TLS配置
func NewTLSConfig(cfg *config.Config) *TLSConfig {
	return &TLSConfig{
		CertFile: cfg.Server.TLS.CertFile,
		KeyFile:  cfg.Server.TLS.KeyFile,
		Enabled:  cfg.Server.TLS.Enabled,
	}
}

// GetTLSConfig 获取标准TLS配置
func (c *TLSConfig) GetTLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12, // 最低TLS 1.2
		CipherSuites: []uint16{
			tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
		},
	}
}

// ValidateCertificates 验证证书文件
func (c *TLSConfig) ValidateCertificates() error {
	if !c.Enabled {
		return nil
	}

	if _, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile); err != nil {
		return fmt.Errorf("验证TLS证书失败: %w", err)
	}

	logging.Info().Str("cert_file", c.CertFile).Msg("TLS证书验证成功")
	return nil
}

// NewHTTPServer 创建 HTTP 服务器。证书无效时回退到 HTTP
func NewHTTPServer(cfg *config.Config, handler http.Handler) (*http.Server, *TLSConfig) {
	tlsCfg := NewTLSConfig(cfg)
	if err := tlsCfg.ValidateCertificates(); err != nil {
		logging.Warn().Err(err).Msg("TLS证书验证失败，回退到HTTP模式")
		tlsCfg = &TLSConfig{}
	}

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Server.Port),
		Handler: handler,

		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if tlsCfg.Enabled {
		srv.TLSConfig = tlsCfg.GetTLSConfig()
	}
	return srv, tlsCfg
}

// Serve 阻塞运行服务器，正常关闭时返回 nil
func (c *TLSConfig) Serve(srv *http.Server) error {
	var err error
	if c.Enabled {
		logging.Info().Str("addr", srv.Addr).Str("cert_file", c.CertFile).Msg("HTTPS服务器已启动")
		err = srv.ListenAndServeTLS(c.CertFile, c.KeyFile)
	} else {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP服务器已启动")
		err = srv.ListenAndServe()
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
