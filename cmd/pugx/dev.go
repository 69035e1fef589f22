package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/pugxlabs/pugx/cmd/pugx/internal/config"
	"github.com/pugxlabs/pugx/internal/cache"
)

type devServer struct {
	port       int
	host       string
	cfg        *config.Config
	cache      *cache.Cache
	watcher    *fsnotify.Watcher
	wsClients  map[*websocket.Conn]bool
	wsMutex    sync.RWMutex
	upgrader   websocket.Upgrader
	buildMutex sync.Mutex
	lastBuild  time.Time
}

func newDevCommand() *cobra.Command {
	var port int
	var host string
	var cwd string

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long:  `Starts a development server that watches templates, recompiles on change, serves the output directory, and notifies connected browsers over a websocket.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cwd != "" {
				if err := os.Chdir(cwd); err != nil {
					return fmt.Errorf("failed to change directory to %s: %w", cwd, err)
				}
			}
			return runDev(host, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run the dev server on (defaults to pugx.yaml)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind the dev server to (defaults to pugx.yaml)")
	cmd.Flags().StringVar(&cwd, "cwd", "", "Working directory of the project (defaults to current)")
	return cmd
}

func runDev(host string, port int) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if host == "" {
		host = cfg.Dev.Host
	}
	if port == 0 {
		port = cfg.Dev.Port
	}

	c, err := cache.Open(cache.DefaultDir)
	if err != nil {
		return err
	}
	defer c.Close()

	s := &devServer{
		port:      port,
		host:      host,
		cfg:       cfg,
		cache:     c,
		wsClients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	if err := buildAll(cfg, c); err != nil {
		// keep serving; the next save gets another chance
		log.Printf("initial build failed: %v", err)
	}

	s.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer s.watcher.Close()
	if err := s.watchTree(cfg.SrcDir); err != nil {
		return err
	}
	go s.watchLoop()

	mux := http.NewServeMux()
	mux.HandleFunc("/__pugx_reload", s.handleWebSocket)
	mux.Handle("/", http.FileServer(http.Dir(cfg.OutDir)))

	addr := fmt.Sprintf("%s:%d", host, port)
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		fmt.Println(successStyle.Render("➜ dev server on http://" + addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("dev server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

// watchTree registers the directory and all subdirectories with the watcher.
func (s *devServer) watchTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return s.watcher.Add(path)
		}
		return nil
	})
}

func (s *devServer) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					s.watcher.Add(event.Name)
					continue
				}
			}
			if strings.HasSuffix(event.Name, ".pug") {
				s.rebuild(event.Name)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher: %v", err)
		}
	}
}

// rebuild recompiles one changed template and tells clients to reload.
// Editors fire several events per save; changes within a short window of the
// last build are ignored.
func (s *devServer) rebuild(srcPath string) {
	s.buildMutex.Lock()
	defer s.buildMutex.Unlock()
	if time.Since(s.lastBuild) < 100*time.Millisecond {
		return
	}
	s.lastBuild = time.Now()

	outPath, err := outputPath(s.cfg, srcPath)
	if err != nil {
		log.Printf("rebuild: %v", err)
		return
	}
	if _, err := compileOne(s.cache, srcPath, outPath); err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		return
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf("  %s → %s", srcPath, outPath)))
	s.broadcastReload()
}

func (s *devServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}

	s.wsMutex.Lock()
	s.wsClients[conn] = true
	s.wsMutex.Unlock()

	go func() {
		defer func() {
			s.wsMutex.Lock()
			delete(s.wsClients, conn)
			s.wsMutex.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *devServer) broadcastReload() {
	s.wsMutex.RLock()
	defer s.wsMutex.RUnlock()
	for conn := range s.wsClients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
			log.Printf("websocket write: %v", err)
		}
	}
}
