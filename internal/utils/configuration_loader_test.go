package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghmirror/internal/utils"
)

const (
	testEnvironmentPrefixConstant                    = "TESTGHMIRROR"
	testGogsURLKeyConstant                           = "mirror.gogs.url"
	testGogsURLEnvironmentVariableConstant           = "TESTGHMIRROR_MIRROR_GOGS_URL"
	testDefaultGogsURLConstant                       = "http://default.invalid"
	testEmbeddedGogsURLConstant                      = "http://embedded.invalid"
	testFileGogsURLConstant                          = "http://file.invalid"
	testEnvironmentGogsURLConstant                   = "http://environment.invalid"
	testConfigFileNameConstant                       = "config.yaml"
	testConfigContentTemplateConstant                = "mirror:\n  gogs:\n    url: %s\n"
	testConfigurationNameConstant                    = "config"
	testConfigurationTypeConstant                    = "yaml"
	testMissingConfigFileNameConstant                = "absent.yaml"
	testMalformedConfigContentConstant               = "mirror: [unterminated\n"
	testUserConfigurationDirectoryNameConstant       = "ghmirror"
	testXDGConfigHomeDirectoryNameConstant           = "config"
	configurationLoaderSubtestTemplateConstant       = "%d_%s"
	testCaseDefaultsMessageConstant                  = "defaults are applied"
	testCaseEmbeddedMessageConstant                  = "embedded configuration overrides defaults"
	testCaseFileMessageConstant                      = "config file overrides embedded"
	testCaseEnvironmentMessageConstant               = "environment overrides file"
	testCaseSearchWorkingDirectoryMessageConstant    = "searches working directory"
	testCaseSearchUserConfigDirectoryMessageConstant = "searches user configuration directory"
	testDirectoryPermissionsConstant                 = 0o755
)

type configurationFixture struct {
	Mirror mirrorFixture `mapstructure:"mirror"`
}

type mirrorFixture struct {
	Gogs gogsFixture `mapstructure:"gogs"`
}

type gogsFixture struct {
	URL string `mapstructure:"url"`
}

func newTestLoader(searchPaths []string) *utils.ConfigurationLoader {
	return utils.NewConfigurationLoader(utils.ConfigurationLoaderOptions{
		ConfigurationName: testConfigurationNameConstant,
		ConfigurationType: testConfigurationTypeConstant,
		EnvironmentPrefix: testEnvironmentPrefixConstant,
		SearchPaths:       searchPaths,
	})
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name             string
		embeddedURL      string
		fileURL          string
		environmentURL   string
		expectedURL      string
		expectConfigFile bool
	}{
		{
			name:        testCaseDefaultsMessageConstant,
			expectedURL: testDefaultGogsURLConstant,
		},
		{
			name:        testCaseEmbeddedMessageConstant,
			embeddedURL: testEmbeddedGogsURLConstant,
			expectedURL: testEmbeddedGogsURLConstant,
		},
		{
			name:             testCaseFileMessageConstant,
			embeddedURL:      testEmbeddedGogsURLConstant,
			fileURL:          testFileGogsURLConstant,
			expectedURL:      testFileGogsURLConstant,
			expectConfigFile: true,
		},
		{
			name:             testCaseEnvironmentMessageConstant,
			embeddedURL:      testEmbeddedGogsURLConstant,
			fileURL:          testFileGogsURLConstant,
			environmentURL:   testEnvironmentGogsURLConstant,
			expectedURL:      testEnvironmentGogsURLConstant,
			expectConfigFile: true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			tempDirectory := testInstance.TempDir()

			configurationFilePath := ""
			if len(testCase.fileURL) > 0 {
				configurationFilePath = filepath.Join(tempDirectory, testConfigFileNameConstant)
				writeError := os.WriteFile(configurationFilePath, []byte(fmt.Sprintf(testConfigContentTemplateConstant, testCase.fileURL)), 0o600)
				require.NoError(testInstance, writeError)
			}

			if len(testCase.environmentURL) > 0 {
				testInstance.Setenv(testGogsURLEnvironmentVariableConstant, testCase.environmentURL)
			}

			configurationLoader := newTestLoader([]string{tempDirectory})
			if len(testCase.embeddedURL) > 0 {
				configurationLoader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testConfigContentTemplateConstant, testCase.embeddedURL)), testConfigurationTypeConstant)
			}

			defaultValues := map[string]any{testGogsURLKeyConstant: testDefaultGogsURLConstant}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedURL, loadedConfiguration.Mirror.Gogs.URL)

			if testCase.expectConfigFile {
				require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
			} else {
				require.Empty(testInstance, metadata.ConfigFileUsed)
			}
		})
	}
}

func TestConfigurationLoaderRejectsUnreadableExplicitFile(testInstance *testing.T) {
	tempDirectory := testInstance.TempDir()
	configurationLoader := newTestLoader([]string{tempDirectory})

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration(filepath.Join(tempDirectory, testMissingConfigFileNameConstant), nil, &loadedConfiguration)
	require.Error(testInstance, loadError)

	malformedPath := filepath.Join(tempDirectory, testConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(malformedPath, []byte(testMalformedConfigContentConstant), 0o600))

	_, malformedError := configurationLoader.LoadConfiguration(malformedPath, nil, &loadedConfiguration)
	require.Error(testInstance, malformedError)
}

func TestConfigurationLoaderRequiresTarget(testInstance *testing.T) {
	configurationLoader := newTestLoader(nil)

	_, loadError := configurationLoader.LoadConfiguration("", nil, nil)
	require.ErrorIs(testInstance, loadError, utils.ErrConfigurationTargetMissing)
}

func TestConfigurationLoaderSearchPaths(testInstance *testing.T) {
	testCases := []struct {
		name                         string
		configurationDirectorySelect func(workingDirectoryPath string, userConfigurationDirectoryPath string) string
	}{
		{
			name: testCaseSearchWorkingDirectoryMessageConstant,
			configurationDirectorySelect: func(workingDirectoryPath string, userConfigurationDirectoryPath string) string {
				return workingDirectoryPath
			},
		},
		{
			name: testCaseSearchUserConfigDirectoryMessageConstant,
			configurationDirectorySelect: func(workingDirectoryPath string, userConfigurationDirectoryPath string) string {
				return userConfigurationDirectoryPath
			},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			workingDirectoryPath := testInstance.TempDir()
			homeDirectoryPath := testInstance.TempDir()

			testInstance.Setenv("HOME", homeDirectoryPath)
			testInstance.Setenv("XDG_CONFIG_HOME", filepath.Join(homeDirectoryPath, testXDGConfigHomeDirectoryNameConstant))

			userConfigurationBaseDirectoryPath, userConfigurationDirectoryError := os.UserConfigDir()
			require.NoError(testInstance, userConfigurationDirectoryError)

			userConfigurationDirectoryPath := filepath.Join(userConfigurationBaseDirectoryPath, testUserConfigurationDirectoryNameConstant)
			require.NoError(testInstance, os.MkdirAll(userConfigurationDirectoryPath, testDirectoryPermissionsConstant))

			selectedDirectoryPath := testCase.configurationDirectorySelect(workingDirectoryPath, userConfigurationDirectoryPath)
			configurationFilePath := filepath.Join(selectedDirectoryPath, testConfigFileNameConstant)
			writeError := os.WriteFile(configurationFilePath, []byte(fmt.Sprintf(testConfigContentTemplateConstant, testFileGogsURLConstant)), 0o600)
			require.NoError(testInstance, writeError)

			configurationLoader := newTestLoader([]string{workingDirectoryPath, userConfigurationDirectoryPath})

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration("", nil, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testFileGogsURLConstant, loadedConfiguration.Mirror.Gogs.URL)
			require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
		})
	}
}
