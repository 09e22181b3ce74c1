package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func loginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "登录并保存 token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient()
			user, err := c.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			viper.Set("token", c.Token())
			path, err := configPath()
			if err != nil {
				return err
			}
			if err := viper.WriteConfigAs(path); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已登录: %s (admin=%t)\n", user.Username, user.IsAdmin)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "用户名或邮箱")
	cmd.Flags().StringVarP(&password, "password", "p", "", "密码")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
