package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"kardio/client"
	"kardio/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "kardioctl",
		Short:             "kardio 类别纠错命令行客户端",
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件（默认 $HOME/.kardioctl.yaml）")
	root.PersistentFlags().String("server", "http://localhost:8080", "服务端地址")
	root.PersistentFlags().String("token", "", "Bearer token，login 成功后自动保存")
	root.PersistentFlags().String("log-level", "warn", "日志级别 (debug, info, warn, error)")
	_ = viper.BindPFlag("server", root.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("token", root.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(loginCmd())
	root.AddCommand(reportsCmd())
	root.AddCommand(transactionsCmd())
	root.AddCommand(versionCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".kardioctl")
		viper.SetConfigType("yaml")
	}

	// KARDIOCTL_SERVER、KARDIOCTL_TOKEN
	viper.SetEnvPrefix("KARDIOCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// 配置文件不存在时使用 flag 和环境变量
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	logger.SetLevel(viper.GetString("log_level"))
	logger.SetConsole(os.Stderr)
	return nil
}

// configPath login 保存 token 的位置
func configPath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kardioctl.yaml"), nil
}

func newClient() *client.Client {
	return client.New(viper.GetString("server"), client.WithToken(viper.GetString("token")))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "kardioctl", version)
		},
	}
}
