package nvim

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/neovim/go-client/nvim"
)

// ErrNoInstance is returned when no Neovim address is known.
var ErrNoInstance = errors.New("no running Neovim instance found")

// reloadBuffer reloads the unmodified buffer showing a file, if any.
const reloadBuffer = `
local path = ...
for _, b in ipairs(vim.api.nvim_list_bufs()) do
  if vim.api.nvim_buf_is_loaded(b) and vim.api.nvim_buf_get_name(b) == path then
    if vim.bo[b].modified then
      return "modified"
    end
    vim.api.nvim_buf_call(b, function() vim.cmd("silent edit!") end)
    return "reloaded"
  end
end
return "absent"
`

// Manager handles the connection and interaction with a Neovim instance.
type Manager struct {
	nvim *nvim.Nvim
}

// Address returns the socket of the Neovim instance this process runs
// under, preferring $NVIM over the older $NVIM_LISTEN_ADDRESS.
func Address() string {
	if addr := os.Getenv("NVIM"); addr != "" {
		return addr
	}
	return os.Getenv("NVIM_LISTEN_ADDRESS")
}

// New connects to the Neovim instance listening on addr.
func New(addr string) (*Manager, error) {
	if addr == "" {
		return nil, ErrNoInstance
	}
	v, err := nvim.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nvim at %s: %w", addr, err)
	}
	return &Manager{nvim: v}, nil
}

// Close disconnects from Neovim.
func (m *Manager) Close() {
	if m.nvim != nil {
		m.nvim.Close()
	}
}

// ReloadBuffers re-reads open buffers for the given files. Buffers with
// unsaved edits are left alone and reported as skipped.
func (m *Manager) ReloadBuffers(paths []string) (reloaded, skipped, failed []string) {
	for _, p := range paths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			failed = append(failed, p)
			continue
		}

		var status string
		if err := m.nvim.ExecLua(reloadBuffer, &status, absPath); err != nil {
			failed = append(failed, p)
			continue
		}
		switch status {
		case "reloaded":
			reloaded = append(reloaded, p)
		case "modified":
			skipped = append(skipped, p)
		}
	}
	return reloaded, skipped, failed
}
